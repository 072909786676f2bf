package user

import (
	"github.com/javanauta/user-directory/internal/domain/user"
)

// UserData is the application-layer view of a user. It never carries the
// password hash, so echoing it to the boundary is always safe.
type UserData struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func toUserData(u *user.User) *UserData {
	return &UserData{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Unix(),
		UpdatedAt: u.UpdatedAt.Unix(),
	}
}
