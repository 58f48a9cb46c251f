package service

import (
	"context"
	"fmt"

	"org-access-registry/internal/audit"
	"org-access-registry/internal/organization/domain"
	orgrepo "org-access-registry/internal/organization/repository"
	"org-access-registry/internal/platform/pagination"
)

// OrgService creates and lists organizations.
type OrgService struct {
	repo        orgrepo.Repository
	auditLogger audit.AuditLogger
}

// NewOrgService returns an OrgService. auditLogger may be nil.
func NewOrgService(repo orgrepo.Repository, auditLogger audit.AuditLogger) *OrgService {
	return &OrgService{repo: repo, auditLogger: auditLogger}
}

// Create stores a new organization and returns its id. Returns domain.ErrDuplicateOrg if the name is taken.
// The uniqueness check and the insert are separate store calls.
func (s *OrgService) Create(ctx context.Context, name string) (string, error) {
	o := &domain.Org{Name: name}
	if err := o.Validate(); err != nil {
		return "", err
	}
	exists, err := s.repo.Exists(ctx, o.Name)
	if err != nil {
		return "", fmt.Errorf("check org: %w", err)
	}
	if exists {
		return "", domain.ErrDuplicateOrg
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return "", fmt.Errorf("create org: %w", err)
	}
	if s.auditLogger != nil {
		s.auditLogger.LogEvent(ctx, audit.ActionOrgCreated, audit.ResourceOrg, o.Name,
			audit.Metadata(map[string]string{"id": o.ID}))
	}
	return o.ID, nil
}

// List returns one page of organizations whose name contains p.Name, ignoring case.
func (s *OrgService) List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.Org], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}
	return page, nil
}
