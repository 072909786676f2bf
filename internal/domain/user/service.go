package user

import (
	"context"
	"errors"

	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

// PasswordHasher is the injected hashing capability. The service never
// compares plaintext itself.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hashed, plaintext string) error
}

// Service holds the directory's business rules: email uniqueness, password
// hashing, partial updates and strict deletion. Input shape validation
// (email format, password policy) happens upstream at the boundary and is
// not re-checked here.
type Service interface {
	// Create stores a new user. The candidate carries the plaintext
	// password; it is replaced with its hash before anything persists.
	// An unset role defaults to RoleOrdinary.
	Create(ctx context.Context, candidate *User) (*User, error)

	// ListAll returns every user in store order.
	ListAll(ctx context.Context) ([]*User, error)

	// GetByID fails with ErrUserNotFound for unknown ids.
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByEmail fails with ErrUserNotFound for unknown emails.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// DeleteByEmail removes the user permanently. Deletion is strict, not
	// idempotent: a second call for the same email fails with
	// ErrUserNotFound.
	DeleteByEmail(ctx context.Context, email string) error

	// UpdateByID applies a partial update. The whole patch is applied only
	// after every check passes; an email collision aborts the call without
	// touching any field. Password and role are never altered here.
	UpdateByID(ctx context.Context, id uint, patch Patch) (*User, error)

	// Authenticate verifies credentials for login, delegating the
	// comparison to the hashing capability.
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo   Repository
	hasher PasswordHasher
}

// NewService creates the user directory service.
func NewService(repo Repository, hasher PasswordHasher) Service {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Create(ctx context.Context, candidate *User) (*User, error) {
	// Pre-check for a friendly failure; the store's unique index remains
	// the authority under concurrency (the repository converts its
	// duplicate-key error to the same failure kind).
	_, err := s.repo.FindByEmail(ctx, candidate.Email)
	if err == nil {
		return nil, apperrors.Newf(apperrors.ErrCodeEmailDuplicate,
			"email '%s' is already registered", candidate.Email)
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(candidate.Password)
	if err != nil {
		return nil, err
	}

	u := *candidate
	u.Password = hashed
	if u.Role == "" {
		u.Role = RoleOrdinary
	}

	if err := s.repo.Create(ctx, &u); err != nil {
		if errors.Is(err, apperrors.ErrEmailDuplicate) {
			return nil, apperrors.Newf(apperrors.ErrCodeEmailDuplicate,
				"email '%s' is already registered", candidate.Email)
		}
		return nil, err
	}

	return &u, nil
}

func (s *service) ListAll(ctx context.Context) ([]*User, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeUserNotFound,
				"user with id %d not found", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeUserNotFound,
				"user with email '%s' not found", email)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteByEmail(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.Newf(apperrors.ErrCodeUserNotFound,
				"user with email '%s' not found", email)
		}
		return err
	}

	return s.repo.Delete(ctx, u.ID)
}

func (s *service) UpdateByID(ctx context.Context, id uint, patch Patch) (*User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeUserNotFound,
				"user with id %d not found", id)
		}
		return nil, err
	}

	// Collision check runs before any field is applied, so a rejected
	// email leaves the name untouched too. Re-submitting the current email
	// is a no-op, not a collision.
	if patch.Email != nil && *patch.Email != current.Email {
		if _, err := s.repo.FindByEmail(ctx, *patch.Email); err == nil {
			return nil, apperrors.Newf(apperrors.ErrCodeEmailDuplicate,
				"email '%s' is already registered to another user", *patch.Email)
		} else if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
	}

	updated := current.Merged(patch)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, apperrors.ErrEmailDuplicate) {
			return nil, apperrors.Newf(apperrors.ErrCodeEmailDuplicate,
				"email '%s' is already registered to another user", updated.Email)
		}
		return nil, err
	}

	return &updated, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Do not reveal whether the email exists.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.Password, password); err != nil {
		return nil, err
	}

	return u, nil
}
