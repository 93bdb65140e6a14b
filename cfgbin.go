// Package cfgbin decodes game cfg.bin configuration containers into a unified
// tabular model.
//
// Two container formats are supported:
//
//   - RDBN: self-describing tables with typed, hash-named fields (see package rdbn)
//   - T2B: flat name-checksummed entries grouped into tables by name (see package t2b)
//
// Both decode into a *database.Database: an ordered list of named tables, each with a
// schema and rows of typed values.
//
// # Basic Usage
//
//	data, _ := os.ReadFile("item_config.cfg.bin")
//	db, err := cfgbin.Parse(data)
//	if errors.Is(err, errs.ErrUnknownFormat) {
//	    // neither RDBN nor T2B
//	}
//	for _, table := range db.Tables() {
//	    fmt.Println(table.Name(), len(table.Rows()))
//	}
//
// # Format Detection
//
// Parse tries the RDBN decoder first and the T2B decoder second. A decoder that does
// not recognize the data rejects it with an error wrapping errs.ErrFormatMismatch and
// the next decoder is tried. If a decoder recognizes the data but cannot decode it, its
// error is returned immediately; no other decoder is attempted.
//
// Decoding is synchronous and works entirely on the given buffer, which is never
// modified. Independent Parse calls may run concurrently, including over one shared
// buffer.
package cfgbin

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/cfgbin/database"
	"github.com/arloliu/cfgbin/endian"
	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/internal/options"
	"github.com/arloliu/cfgbin/rdbn"
	"github.com/arloliu/cfgbin/section"
	"github.com/arloliu/cfgbin/t2b"
)

// ParseOption configures Parse.
type ParseOption = options.Option[*parseConfig]

type parseConfig struct {
	logger  *slog.Logger
	sources []format.Source
}

// WithLogger sets the logger receiving detection diagnostics.
//
// Rejections are logged at Debug level, the detected format at Info level. Parse is
// silent by default.
func WithLogger(logger *slog.Logger) ParseOption {
	return options.NoError(func(c *parseConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithSources restricts detection to the given formats, tried in the given order.
//
// Returns an error from Parse if no format or an unknown format is given.
func WithSources(sources ...format.Source) ParseOption {
	return options.New(func(c *parseConfig) error {
		if len(sources) == 0 {
			return fmt.Errorf("%w: no source format given", errs.ErrUnknownFormat)
		}

		for _, s := range sources {
			if _, ok := decoders[s]; !ok {
				return fmt.Errorf("%w: %s", errs.ErrUnknownFormat, s)
			}
		}
		c.sources = sources

		return nil
	})
}

type decodeFunc func(data []byte) (*database.Database, error)

var decoders = map[format.Source]decodeFunc{
	format.SourceRDBN: func(data []byte) (*database.Database, error) {
		file, err := rdbn.Decode(data)
		if err != nil {
			return nil, err
		}

		return database.FromRdbn(file), nil
	},
	format.SourceT2B: func(data []byte) (*database.Database, error) {
		file, err := t2b.Decode(data)
		if err != nil {
			return nil, err
		}

		return database.FromT2b(file), nil
	},
}

// Parse decodes a cfg.bin container.
//
// Parameters:
//   - data: Complete container bytes; only read, and not retained by the result
//   - opts: Optional configuration (WithLogger, WithSources)
//
// Returns:
//   - *database.Database: The decoded tables
//   - error: errs.ErrUnknownFormat if no decoder recognizes the data, or the error of
//     the decoder that recognized it but failed
func Parse(data []byte, opts ...ParseOption) (*database.Database, error) {
	cfg := &parseConfig{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		sources: []format.Source{format.SourceRDBN, format.SourceT2B},
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	for _, source := range cfg.sources {
		db, err := decoders[source](data)
		if err == nil {
			cfg.logger.Info("decoded cfg.bin", "format", source, "tables", len(db.Tables()), "bytes", len(data))
			return db, nil
		}

		if !errs.IsMismatch(err) {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}

		cfg.logger.Debug("format rejected", "format", source, "reason", err)
	}

	return nil, errs.ErrUnknownFormat
}

// ParseFile reads and decodes the file at path.
func ParseFile(path string, opts ...ParseOption) (*database.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data, opts...)
}

// Detect reports which container format data carries, judging by signature only: the
// RDBN header magic, then the T2B footer magic. Parse may still reject data Detect
// accepts.
//
// Returns:
//   - format.Source: The detected format
//   - error: errs.ErrUnknownFormat if neither signature is present
func Detect(data []byte) (format.Source, error) {
	engine := endian.GetLittleEndianEngine()

	if len(data) >= section.RdbnHeaderSize && engine.Uint32(data[0:4]) == section.MagicRDBN {
		return format.SourceRDBN, nil
	}

	if len(data) >= section.T2bMinimumSize {
		footer := len(data) - section.T2bFooterSize
		if engine.Uint32(data[footer:footer+4]) == section.MagicT2B {
			return format.SourceT2B, nil
		}
	}

	return 0, errs.ErrUnknownFormat
}
