package domain

import (
	"errors"
	"strings"
)

var (
	// ErrOrgNotFound is returned when no organization has the requested name.
	ErrOrgNotFound = errors.New("org not found")
	// ErrDuplicateOrg is returned when creating an organization whose name is already taken.
	ErrDuplicateOrg = errors.New("org already exists")
)

// Org represents an organization. Name is the natural key; ID is store-assigned and only
// reported back on create.
type Org struct {
	ID   string
	Name string
}

// Validate validates the organization for persistence. Returns an error describing the first validation failure.
// Name is compared case-sensitively everywhere, so only surrounding whitespace is normalized.
func (o *Org) Validate() error {
	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
