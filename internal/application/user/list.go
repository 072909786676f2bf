package user

import (
	"context"

	"github.com/javanauta/user-directory/internal/domain/user"
)

// ListUsersUseCase returns every user in the directory. No filtering or
// pagination; the directory is an identity store, not a search surface.
type ListUsersUseCase struct {
	userService user.Service
}

// NewListUsersUseCase creates the use case.
func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

// Execute lists all users in store order.
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*UserData, error) {
	users, err := uc.userService.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*UserData, 0, len(users))
	for _, u := range users {
		out = append(out, toUserData(u))
	}

	return out, nil
}
