package user

import (
	"context"

	"github.com/javanauta/user-directory/internal/domain/user"
)

// UpdateUserUseCase applies a partial update to a user. The boundary accepts
// a role field in its payload for wire compatibility, but it is dropped
// before this layer: the domain Patch has no role or password member, so
// neither can ever change through an update.
type UpdateUserUseCase struct {
	userService user.Service
}

// NewUpdateUserUseCase creates the use case.
func NewUpdateUserUseCase(userService user.Service) *UpdateUserUseCase {
	return &UpdateUserUseCase{userService: userService}
}

// Execute applies the patch and returns the post-update record.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, id uint, req UpdateUserRequest) (*UserData, error) {
	updated, err := uc.userService.UpdateByID(ctx, id, user.Patch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return toUserData(updated), nil
}

// UpdateUserRequest is the application-layer patch; nil means unchanged.
type UpdateUserRequest struct {
	Name  *string
	Email *string
}
