package apperrors

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("keeps sentinel and cause", func(t *testing.T) {
		t.Parallel()

		err := Wrap(ErrContractRead, "AMM.PRECISION", context.DeadlineExceeded)
		wrapped := errors.Wrap(err, "sync")

		require.True(t, errors.Is(wrapped, ErrContractRead))
		require.True(t, errors.Is(wrapped, context.DeadlineExceeded))
		require.False(t, errors.Is(wrapped, ErrTxFailed))
		require.Equal(t, "AMM.PRECISION: contract read failed: context deadline exceeded", err.Error())
	})

	t.Run("nil cause", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, Wrap(ErrContractRead, "op", nil))
	})
}
