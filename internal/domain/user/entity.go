package user

import (
	"time"
)

// Role is the closed set of access roles a user can hold.
type Role string

const (
	// RoleOrdinary is the default role assigned at creation.
	RoleOrdinary Role = "ordinary"
	// RoleAdministrator grants management rights over other accounts.
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleOrdinary || r == RoleAdministrator
}

// User is the directory's sole entity. Password always holds the hashed form
// once the entity has passed through the service; plaintext never persists.
type User struct {
	ID        uint
	Email     string
	Name      string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch is a partial update: nil fields mean "leave unchanged". Password and
// role are deliberately absent; neither is mutable through the update
// operation.
type Patch struct {
	Name  *string
	Email *string
}

// Merged returns a copy of u with the patch applied. It is a pure function on
// values so concurrent calls never share a mutable record.
func (u User) Merged(p Patch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}
