package service

import (
	"context"
	"fmt"
	"strings"

	"org-access-registry/internal/audit"
	"org-access-registry/internal/platform/pagination"
	"org-access-registry/internal/user/domain"
	userrepo "org-access-registry/internal/user/repository"
)

// UserService creates, lists and fetches users.
type UserService struct {
	repo        userrepo.Repository
	auditLogger audit.AuditLogger
}

// NewUserService returns a UserService. auditLogger may be nil.
func NewUserService(repo userrepo.Repository, auditLogger audit.AuditLogger) *UserService {
	return &UserService{repo: repo, auditLogger: auditLogger}
}

// Create validates and stores a new user and returns its id.
func (s *UserService) Create(ctx context.Context, name, email string) (string, error) {
	u := &domain.User{Name: name, Email: email}
	if err := u.Validate(); err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	if s.auditLogger != nil {
		s.auditLogger.LogEvent(ctx, audit.ActionUserCreated, audit.ResourceUser, u.ID,
			audit.Metadata(map[string]string{"email": u.Email}))
	}
	return u.ID, nil
}

// List returns one page of users whose name contains p.Name, ignoring case.
func (s *UserService) List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.User], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	page, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}

// Get returns the user for id. Returns domain.ErrUserNotFound if absent and domain.ErrInvalidUserID if id is malformed.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
