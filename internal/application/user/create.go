package user

import (
	"context"

	"github.com/javanauta/user-directory/internal/domain/user"
	"github.com/javanauta/user-directory/pkg/metrics"
)

// CreateUserUseCase registers a new user in the directory.
type CreateUserUseCase struct {
	userService user.Service
}

// NewCreateUserUseCase creates the use case.
func NewCreateUserUseCase(userService user.Service) *CreateUserUseCase {
	return &CreateUserUseCase{userService: userService}
}

// Execute runs the creation and returns the stored record with its assigned
// id. Role arrives already validated by the boundary; empty means the
// service applies the default.
func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) (*UserData, error) {
	created, err := uc.userService.Create(ctx, &user.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()

	return toUserData(created), nil
}

// CreateUserRequest is the application-layer creation payload. Password is
// plaintext here and nowhere past the domain service.
type CreateUserRequest struct {
	Email    string
	Name     string
	Password string
	Role     string
}
