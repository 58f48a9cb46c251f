package repository

import (
	"context"

	"org-access-registry/internal/organization/domain"
	"org-access-registry/internal/platform/pagination"
)

// Repository defines persistence for organizations.
type Repository interface {
	// Create inserts o and sets o.ID to the store-assigned identifier. It does not check name uniqueness.
	Create(ctx context.Context, o *domain.Org) error
	// Exists reports whether an organization with exactly name is present.
	Exists(ctx context.Context, name string) (bool, error)
	// List returns one page of organizations whose name contains p.Name, ignoring case.
	List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.Org], error)
}
