package domain

import (
	"errors"
	"strings"
)

var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUserID is returned when an id is not a well-formed store identifier.
	ErrInvalidUserID = errors.New("invalid user id")
)

// User is a registered user. ID is assigned by the store on insert and never changes.
type User struct {
	ID    string
	Name  string
	Email string
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	return nil
}
