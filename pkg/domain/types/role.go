package types

import "fmt"

// Role represents the organization-wide role of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleUser     Role = "user"
	RoleReadOnly Role = "read_only"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleManager,
		RoleUser,
		RoleReadOnly,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin,
		RoleManager,
		RoleUser,
		RoleReadOnly:
		return true
	default:
		return false
	}
}

// Normalize returns the role, treating empty as RoleUser. A profile row
// without a role grants minimum privilege, never more.
func (r Role) Normalize() Role {
	if r == "" {
		return RoleUser
	}
	return r
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
