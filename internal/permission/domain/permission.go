package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRole is returned for any role outside READ, WRITE and ADMIN.
var ErrInvalidRole = errors.New("invalid role")

// Role is the access level a user holds within an organization. The set is closed.
type Role string

const (
	RoleRead  Role = "READ"
	RoleWrite Role = "WRITE"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is one of the fixed roles. Matching is case-sensitive.
func (r Role) IsValid() bool {
	switch r {
	case RoleRead, RoleWrite, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts s to a Role, returning ErrInvalidRole if it is not an exact match.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Permission grants Role to the user UserID within the organization OrgName.
// (UserID, OrgName) is the natural key: at most one permission exists per pair.
type Permission struct {
	UserID  string
	OrgName string
	Role    Role
}
