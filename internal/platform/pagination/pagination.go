// Package pagination holds the list parameters shared by the user, organization and permission listings.
package pagination

import (
	"errors"
	"strings"
)

// DefaultLimit is used when a request does not specify a limit.
const DefaultLimit = 10

// Params selects one page of a listing. Limit 0 means no limit.
// Name, when non-empty, filters by case-insensitive substring on the record's name.
type Params struct {
	Limit  int64
	Offset int64
	Name   string
}

// Validate rejects negative bounds and normalizes Name.
func (p *Params) Validate() error {
	if p.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	if p.Offset < 0 {
		return errors.New("offset must not be negative")
	}
	p.Name = strings.TrimSpace(p.Name)
	return nil
}

// Page is one page of results. Count is the total number of records matching the filter,
// independent of Limit and Offset.
type Page[T any] struct {
	Count int64
	Items []T
}
