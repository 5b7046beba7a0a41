package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esalabs/controltower/pkg/serrors"
)

func TestWrapStore(t *testing.T) {
	require.NoError(t, serrors.WrapStore(nil))

	// Typed errors pass through so the HTTP layer keeps the original code.
	notFound := serrors.NewNotFoundError("program")
	require.Same(t, error(notFound), serrors.WrapStore(notFound))

	wrappedTyped := fmt.Errorf("loading: %w", serrors.NewAlreadyDecidedError("change request"))
	require.Equal(t, wrappedTyped, serrors.WrapStore(wrappedTyped))

	plain := errors.New("connection refused")
	wrapped := serrors.WrapStore(plain)
	require.Equal(t, serrors.CodeStoreUnavailable, serrors.Code(wrapped))
	require.ErrorIs(t, wrapped, plain)
}

func TestCode(t *testing.T) {
	require.Equal(t, serrors.CodeNotFound, serrors.Code(serrors.NewNotFoundError("x")))
	require.Equal(t, serrors.CodeFieldRequired, serrors.Code(serrors.NewFieldRequiredError("task_id")))
	require.Equal(t, serrors.CodeInternal, serrors.Code(errors.New("boom")))

	require.True(t, serrors.HasCode(serrors.NewUnrecognizedError("status x"), serrors.CodeUnrecognized))
	require.False(t, serrors.HasCode(errors.New("boom"), serrors.CodeUnrecognized))
}
