package user

import (
	"context"

	"github.com/javanauta/user-directory/internal/domain/user"
)

// GetUserUseCase looks up a single user by id or by email.
type GetUserUseCase struct {
	userService user.Service
}

// NewGetUserUseCase creates the use case.
func NewGetUserUseCase(userService user.Service) *GetUserUseCase {
	return &GetUserUseCase{userService: userService}
}

// ExecuteByID returns the user with the given id.
func (uc *GetUserUseCase) ExecuteByID(ctx context.Context, id uint) (*UserData, error) {
	u, err := uc.userService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserData(u), nil
}

// ExecuteByEmail returns the user with the given email (exact match).
func (uc *GetUserUseCase) ExecuteByEmail(ctx context.Context, email string) (*UserData, error) {
	u, err := uc.userService.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserData(u), nil
}
