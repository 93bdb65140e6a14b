// Package errs defines the sentinel errors returned by the cfg.bin decoders.
//
// Errors fall into two classes. A format rejection wraps ErrFormatMismatch: the bytes
// are not (or not provably) the format the decoder handles, and the dispatcher moves on
// to the next decoder. Every other error is fatal: the format was positively identified
// but its content cannot be decoded.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatMismatch marks a rejection: the data does not carry this decoder's signature.
	ErrFormatMismatch = errors.New("data does not match format signature")
	// ErrUnknownFormat is returned by the dispatcher when every decoder rejected the data.
	ErrUnknownFormat = errors.New("unable to detect file format")

	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidRecordSize  = errors.New("invalid record size")
	ErrInvalidCount       = errors.New("invalid section count")
	ErrOffsetOutOfRange   = errors.New("offset out of range")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrUnterminatedString = errors.New("unterminated string")

	// RDBN
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrUnknownStringHash    = errors.New("unknown string hash")

	// T2B
	ErrValueLengthUndetected = errors.New("unable to detect value length")
	ErrHashTypeUndetected    = errors.New("unable to detect hash type")
	ErrEmptyChecksumSection  = errors.New("empty checksum section")
	ErrUnknownChecksum       = errors.New("unknown entry checksum")
	ErrInvalidValueType      = errors.New("invalid value type")

	// Export and configuration
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrUnsupportedCompression  = errors.New("unsupported compression type")
	ErrInvalidConfig           = errors.New("invalid configuration")
)

// Mismatch wraps cause as a format rejection.
//
// The returned error matches both ErrFormatMismatch and cause with errors.Is.
func Mismatch(cause error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("%w: %w", ErrFormatMismatch, cause)
	}

	return fmt.Errorf("%w: %w: %s", ErrFormatMismatch, cause, fmt.Sprintf(format, args...))
}

// IsMismatch reports whether err is a format rejection.
func IsMismatch(err error) bool {
	return errors.Is(err, ErrFormatMismatch)
}
