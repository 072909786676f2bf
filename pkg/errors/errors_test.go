package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	named := Newf(ErrCodeEmailDuplicate, "email '%s' is already registered", "a@b.com")

	assert.ErrorIs(t, named, ErrEmailDuplicate, "formatted error matches the sentinel of the same code")
	assert.NotErrorIs(t, named, ErrUserNotFound)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "database error")

	assert.Equal(t, ErrCodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestGetAppError(t *testing.T) {
	t.Run("extracts through wrapping", func(t *testing.T) {
		err := fmt.Errorf("use case: %w", ErrUserNotFound)
		appErr := GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeUserNotFound, appErr.Code)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
	})
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrForbidden))
	assert.False(t, IsAppError(errors.New("plain")))
}
