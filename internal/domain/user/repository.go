package user

import (
	"context"
)

// Repository is the record-store dependency. Implementations live in the
// infrastructure layer; the domain depends only on this interface.
//
// The backing store must enforce a unique index on email. Implementations
// convert the store's duplicate-key error into errors.ErrEmailDuplicate on
// both Create and Update: the constraint, not the service's pre-check, is
// the final authority against concurrent writers.
type Repository interface {
	// Create inserts a new record and fills in the assigned id and
	// timestamps. Returns errors.ErrEmailDuplicate if the email is taken.
	Create(ctx context.Context, user *User) error

	// FindByID returns errors.ErrUserNotFound when no record has the id.
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail is an exact-match lookup. Returns errors.ErrUserNotFound
	// when no record has the email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns every record in store order.
	FindAll(ctx context.Context) ([]*User, error)

	// Update persists all fields of the record in a single statement.
	// Returns errors.ErrEmailDuplicate if the new email is taken.
	Update(ctx context.Context, user *User) error

	// Delete removes the record permanently. Returns errors.ErrUserNotFound
	// when no record has the id.
	Delete(ctx context.Context, id uint) error
}
