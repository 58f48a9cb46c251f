package audit

import (
	"context"
	"errors"
	"testing"

	"org-access-registry/internal/audit/domain"
)

// mockAuditRepo implements audit repository interface for tests.
type mockAuditRepo struct {
	entries   []*domain.AuditLog
	createErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func TestLogger_LogEvent_Success(t *testing.T) {
	repo := &mockAuditRepo{}
	ipExtractor := func(ctx context.Context) string {
		return "192.168.1.1"
	}
	logger := NewLogger(repo, ipExtractor)

	logger.LogEvent(context.Background(), ActionOrgCreated, ResourceOrg, "Acme", `{"id":"x"}`)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.Action != ActionOrgCreated {
		t.Errorf("action = %q, want %q", entry.Action, ActionOrgCreated)
	}
	if entry.Resource != ResourceOrg {
		t.Errorf("resource = %q, want %q", entry.Resource, ResourceOrg)
	}
	if entry.ResourceID != "Acme" {
		t.Errorf("resource_id = %q, want %q", entry.ResourceID, "Acme")
	}
	if entry.IP != "192.168.1.1" {
		t.Errorf("ip = %q, want %q", entry.IP, "192.168.1.1")
	}
	if entry.Metadata != `{"id":"x"}` {
		t.Errorf("metadata = %q", entry.Metadata)
	}
	if entry.ID == "" {
		t.Error("entry ID should be set")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("entry CreatedAt should be set")
	}
}

func TestLogger_LogEvent_NilIPExtractor(t *testing.T) {
	repo := &mockAuditRepo{}
	logger := NewLogger(repo, nil)

	logger.LogEvent(context.Background(), ActionUserCreated, ResourceUser, "u1", "")

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].IP != "unknown" {
		t.Errorf("ip = %q, want %q", repo.entries[0].IP, "unknown")
	}
}

func TestLogger_LogEvent_RepositoryError(t *testing.T) {
	repo := &mockAuditRepo{createErr: errors.New("database error")}
	logger := NewLogger(repo, nil)

	// Should not panic or return error - best-effort logging
	logger.LogEvent(context.Background(), ActionPermissionsRevoked, ResourcePermission, "", "")
}

func TestLogger_LogEvent_NilRepo(t *testing.T) {
	NewLogger(nil, nil).LogEvent(context.Background(), "action", "resource", "", "")

	var nilLogger *Logger
	nilLogger.LogEvent(context.Background(), "action", "resource", "", "")
}

func TestMetadata(t *testing.T) {
	got := Metadata(map[string]int64{"count": 2})
	if got != `{"count":2}` {
		t.Errorf("Metadata = %q", got)
	}
	if got := Metadata(make(chan int)); got != "" {
		t.Errorf("Metadata(chan) = %q, want empty", got)
	}
}
