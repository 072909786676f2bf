package dto

import (
	"regexp"
)

// CreateUserRequest is the creation payload. Shape validation happens here
// via binding tags plus the password policy check; the domain service
// assumes these preconditions hold.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=ordinary administrator"`
}

// UpdateUserRequest is the partial-update payload. Absent fields mean
// "leave unchanged". Role is accepted for wire compatibility with older
// clients but is never applied; password is not updatable at all.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Role  *string `json:"role,omitempty" binding:"omitempty,oneof=ordinary administrator"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the wire view of a user. There is no password field, so
// the hash cannot leave the process even if a response is logged.
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// LoginResponse carries the authenticated user and the token pair.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[@#$%^&+=!]`)
	hasSpace   = regexp.MustCompile(`\s`)
)

// ValidPassword enforces the complexity policy: at least 8 characters with
// an upper-case letter, a lower-case letter, a digit, a special character
// and no whitespace.
func ValidPassword(password string) bool {
	return len(password) >= 8 &&
		hasUpper.MatchString(password) &&
		hasLower.MatchString(password) &&
		hasDigit.MatchString(password) &&
		hasSpecial.MatchString(password) &&
		!hasSpace.MatchString(password)
}
