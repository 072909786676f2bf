package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(4) // minimum cost keeps the test fast

	hashed, err := h.Hash("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", hashed, "plaintext never stored")

	assert.NoError(t, h.Compare(hashed, "Secret123!"))
	assert.ErrorIs(t, h.Compare(hashed, "Wrong123!"), apperrors.ErrInvalidCredentials)
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher(4)

	first, err := h.Hash("Secret123!")
	require.NoError(t, err)
	second, err := h.Hash("Secret123!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same password hashes differently per salt")
}

func TestCostFallback(t *testing.T) {
	// Out-of-range costs must not panic or weaken hashing.
	for _, cost := range []int{-1, 0, 99} {
		h := NewBcryptHasher(cost)
		hashed, err := h.Hash("Secret123!")
		require.NoError(t, err)
		assert.NoError(t, h.Compare(hashed, "Secret123!"))
	}
}
