package repository

import (
	"context"

	"org-access-registry/internal/platform/pagination"
	"org-access-registry/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	// Create inserts u and sets u.ID to the store-assigned identifier.
	Create(ctx context.Context, u *domain.User) error
	// GetByID returns the user for id, or nil if not found. Returns domain.ErrInvalidUserID if id is malformed.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// Exists reports whether a user with id is present. Returns domain.ErrInvalidUserID if id is malformed.
	Exists(ctx context.Context, id string) (bool, error)
	// List returns one page of users whose name contains p.Name, ignoring case.
	List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.User], error)
}
