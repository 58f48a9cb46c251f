package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"org-access-registry/internal/audit"
	orgdomain "org-access-registry/internal/organization/domain"
	"org-access-registry/internal/permission/domain"
	permissionrepo "org-access-registry/internal/permission/repository"
	"org-access-registry/internal/platform/pagination"
	userdomain "org-access-registry/internal/user/domain"
)

// NoneRemovedMessage is reported by Revoke when nothing matched.
const NoneRemovedMessage = "No user with given permission exists"

var tracer = otel.Tracer("org-access-registry/permission")

// UserChecker is the minimal user repository needed by the manager.
type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// OrgChecker is the minimal organization repository needed by the manager.
type OrgChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// AssignResult holds the outcome of Assign. Count is the number of newly created permissions;
// permissions whose role was only updated are not counted.
type AssignResult struct {
	Count int64
}

// RevokeResult holds the outcome of Revoke.
type RevokeResult struct {
	DeletedCount int64
	Message      string
}

// ListParams filters a permission listing. Empty UserID or OrgName match any value.
type ListParams struct {
	UserID  string
	OrgName string
	pagination.Params
}

// Manager validates and applies bulk permission changes.
type Manager struct {
	repo        permissionrepo.Repository
	users       UserChecker
	orgs        OrgChecker
	auditLogger audit.AuditLogger
	assigned    metric.Int64Counter
	revoked     metric.Int64Counter
}

// NewManager returns a Manager. auditLogger may be nil. Counters are taken from the global meter provider.
func NewManager(repo permissionrepo.Repository, users UserChecker, orgs OrgChecker, auditLogger audit.AuditLogger) *Manager {
	meter := otel.Meter("org-access-registry/permission")
	assigned, err := meter.Int64Counter("permissions.assigned",
		metric.WithDescription("Permissions created by assign requests"),
		metric.WithUnit("{permission}"))
	if err != nil {
		log.WithError(err).Warn("permission: assigned counter unavailable")
		assigned = noop.Int64Counter{}
	}
	revoked, err := meter.Int64Counter("permissions.revoked",
		metric.WithDescription("Permissions deleted by revoke requests"),
		metric.WithUnit("{permission}"))
	if err != nil {
		log.WithError(err).Warn("permission: revoked counter unavailable")
		revoked = noop.Int64Counter{}
	}
	return &Manager{
		repo:        repo,
		users:       users,
		orgs:        orgs,
		auditLogger: auditLogger,
		assigned:    assigned,
		revoked:     revoked,
	}
}

// Assign checks every permission in order and, if all pass, upserts them in one bulk write.
// The first failing element aborts the batch before anything is written: the user must exist
// (userdomain.ErrUserNotFound, userdomain.ErrInvalidUserID), then the organization
// (orgdomain.ErrOrgNotFound), then the role must be valid (domain.ErrInvalidRole).
func (m *Manager) Assign(ctx context.Context, perms []domain.Permission) (*AssignResult, error) {
	ctx, span := tracer.Start(ctx, "Assign")
	defer span.End()
	span.SetAttributes(attribute.Int("permission.batch_size", len(perms)))

	if len(perms) == 0 {
		return &AssignResult{}, nil
	}
	for i, p := range perms {
		if err := m.check(ctx, p); err != nil {
			err = fmt.Errorf("permission %d: %w", i, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "validation failed")
			return nil, err
		}
	}

	inserted, err := m.repo.UpsertMany(ctx, perms)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
		return nil, fmt.Errorf("assign permissions: %w", err)
	}
	m.assigned.Add(ctx, inserted)
	span.SetAttributes(attribute.Int64("permission.inserted", inserted))
	if m.auditLogger != nil {
		m.auditLogger.LogEvent(ctx, audit.ActionPermissionsAssigned, audit.ResourcePermission, "",
			audit.Metadata(map[string]int64{"requested": int64(len(perms)), "inserted": inserted}))
	}
	return &AssignResult{Count: inserted}, nil
}

// check reports the first reason p cannot be assigned. An empty user id fails the user lookup
// and an empty role fails the role check, in that order.
func (m *Manager) check(ctx context.Context, p domain.Permission) error {
	ok, err := m.users.Exists(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return userdomain.ErrUserNotFound
	}
	ok, err = m.orgs.Exists(ctx, p.OrgName)
	if err != nil {
		return err
	}
	if !ok {
		return orgdomain.ErrOrgNotFound
	}
	_, err = domain.ParseRole(string(p.Role))
	return err
}

// Revoke deletes every stored permission that equals one of perms on user id, organization and role,
// in a single store call. Nothing is validated: an element with an empty field is matched literally
// and elements that match nothing are ignored. perms is not modified.
func (m *Manager) Revoke(ctx context.Context, perms []domain.Permission) (*RevokeResult, error) {
	ctx, span := tracer.Start(ctx, "Revoke")
	defer span.End()
	span.SetAttributes(attribute.Int("permission.batch_size", len(perms)))

	var deleted int64
	if len(perms) > 0 {
		n, err := m.repo.DeleteMatching(ctx, perms)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "delete failed")
			return nil, fmt.Errorf("revoke permissions: %w", err)
		}
		deleted = n
	}
	m.revoked.Add(ctx, deleted)
	span.SetAttributes(attribute.Int64("permission.deleted", deleted))
	if deleted > 0 && m.auditLogger != nil {
		m.auditLogger.LogEvent(ctx, audit.ActionPermissionsRevoked, audit.ResourcePermission, "",
			audit.Metadata(map[string]int64{"requested": int64(len(perms)), "deleted": deleted}))
	}
	return &RevokeResult{DeletedCount: deleted, Message: revokeMessage(deleted)}, nil
}

func revokeMessage(deleted int64) string {
	if deleted == 0 {
		return NoneRemovedMessage
	}
	return fmt.Sprintf("%d permissions successfully removed", deleted)
}

// List returns one page of permissions, optionally narrowed to one user and/or organization.
func (m *Manager) List(ctx context.Context, p ListParams) (*pagination.Page[*domain.Permission], error) {
	if err := p.Params.Validate(); err != nil {
		return nil, err
	}
	page, err := m.repo.List(ctx, permissionrepo.ListFilter{
		UserID:  strings.TrimSpace(p.UserID),
		OrgName: p.OrgName,
		Limit:   p.Limit,
		Offset:  p.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return page, nil
}
