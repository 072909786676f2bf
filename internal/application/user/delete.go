package user

import (
	"context"

	"github.com/javanauta/user-directory/internal/domain/user"
	"github.com/javanauta/user-directory/pkg/metrics"
)

// DeleteUserUseCase removes a user permanently, addressed by email.
type DeleteUserUseCase struct {
	userService user.Service
}

// NewDeleteUserUseCase creates the use case.
func NewDeleteUserUseCase(userService user.Service) *DeleteUserUseCase {
	return &DeleteUserUseCase{userService: userService}
}

// Execute deletes the user. Deletion is strict: deleting an email that is
// not in the directory fails with not-found, including the second call for
// an email that was just deleted.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, email string) error {
	if err := uc.userService.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return nil
}
