package repository

import (
	"context"

	"org-access-registry/internal/permission/domain"
	"org-access-registry/internal/platform/pagination"
)

// ListFilter narrows a permission listing. Empty UserID or OrgName match any value. Limit 0 means no limit.
type ListFilter struct {
	UserID  string
	OrgName string
	Limit   int64
	Offset  int64
}

// Repository defines persistence for permissions.
type Repository interface {
	// UpsertMany sets the role of each (user_id, org_name) pair in one ordered bulk write, inserting
	// pairs that do not exist yet. Returns how many pairs were inserted; updated pairs are not counted.
	UpsertMany(ctx context.Context, perms []domain.Permission) (inserted int64, err error)
	// DeleteMatching deletes every permission equal to any element of perms on all three fields
	// in a single call and returns the number deleted.
	DeleteMatching(ctx context.Context, perms []domain.Permission) (deleted int64, err error)
	// List returns one page of permissions matching f.
	List(ctx context.Context, f ListFilter) (*pagination.Page[*domain.Permission], error)
}
