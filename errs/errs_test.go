package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMismatch(t *testing.T) {
	t.Run("WithoutDetail", func(t *testing.T) {
		err := Mismatch(ErrInvalidMagicNumber, "")
		require.ErrorIs(t, err, ErrFormatMismatch)
		require.ErrorIs(t, err, ErrInvalidMagicNumber)
		require.True(t, IsMismatch(err))
	})

	t.Run("WithDetail", func(t *testing.T) {
		err := Mismatch(ErrOffsetOutOfRange, "string offset 0x%X", 0x40)
		require.ErrorIs(t, err, ErrOffsetOutOfRange)
		require.Contains(t, err.Error(), "string offset 0x40")
	})

	t.Run("WrappedAgain", func(t *testing.T) {
		err := fmt.Errorf("rdbn: %w", Mismatch(ErrInvalidHeaderSize, ""))
		require.True(t, IsMismatch(err))
	})
}

func TestIsMismatchFatal(t *testing.T) {
	require.False(t, IsMismatch(ErrUnsupportedFieldType))
	require.False(t, IsMismatch(fmt.Errorf("row 3: %w", ErrOffsetOutOfRange)))
	require.False(t, IsMismatch(nil))
	require.False(t, IsMismatch(errors.New("other")))
}
