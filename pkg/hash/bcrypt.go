package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

// BcryptHasher is the password-hashing capability injected into the user
// service. bcrypt salts automatically and is deliberately slow, so creation
// latency grows with the cost parameter.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Cost outside bcrypt's
// valid range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash transforms a plaintext password into its stored form.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

// Compare checks a plaintext password against a stored hash. A mismatch is
// reported as invalid credentials, never by plaintext comparison.
func (h *BcryptHasher) Compare(hashed, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidCredentials
		}
		return apperrors.Wrap(err, "failed to verify password")
	}
	return nil
}
