package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"

	"org-access-registry/internal/platform/pagination"
	"org-access-registry/internal/user/domain"
)

// mockUserRepo implements userrepo.Repository for tests.
type mockUserRepo struct {
	users     map[string]*domain.User
	nextID    int
	createErr error
	listErr   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	u.ID = strconv.Itoa(m.nextID)
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "bad" {
		return nil, domain.ErrInvalidUserID
	}
	return m.users[id], nil
}

func (m *mockUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	u, err := m.GetByID(ctx, id)
	return u != nil, err
}

func (m *mockUserRepo) List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.User], error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var matched []*domain.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(p.Name)) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	count := int64(len(matched))
	if p.Offset >= count {
		matched = nil
	} else {
		matched = matched[p.Offset:]
	}
	if p.Limit > 0 && int64(len(matched)) > p.Limit {
		matched = matched[:p.Limit]
	}
	return &pagination.Page[*domain.User]{Count: count, Items: matched}, nil
}

type recordingAuditLogger struct {
	actions []string
}

func (r *recordingAuditLogger) LogEvent(ctx context.Context, action, resource, resourceID, metadata string) {
	r.actions = append(r.actions, action)
}

func TestCreate_Success(t *testing.T) {
	repo := newMockUserRepo()
	auditLog := &recordingAuditLogger{}
	svc := NewUserService(repo, auditLog)

	id, err := svc.Create(context.Background(), " John ", "john@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("id should be set")
	}
	if repo.users[id].Name != "John" {
		t.Errorf("name = %q, want %q", repo.users[id].Name, "John")
	}
	if len(auditLog.actions) != 1 || auditLog.actions[0] != "user_created" {
		t.Errorf("audit actions = %v", auditLog.actions)
	}
}

func TestCreate_ValidationError(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, nil)

	if _, err := svc.Create(context.Background(), "", "a@example.com"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := svc.Create(context.Background(), "Ann", "  "); err == nil {
		t.Fatal("expected error for empty email")
	}
	if len(repo.users) != 0 {
		t.Errorf("store should be unchanged, has %d users", len(repo.users))
	}
}

func TestCreate_RepoError(t *testing.T) {
	repoErr := errors.New("insert failed")
	repo := newMockUserRepo()
	repo.createErr = repoErr
	svc := NewUserService(repo, nil)

	_, err := svc.Create(context.Background(), "Ann", "ann@example.com")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestList_NameFilter(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()
	for _, name := range []string{"John", "Mark", "Joanna"} {
		if _, err := svc.Create(ctx, name, strings.ToLower(name)+"@example.com"); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	page, err := svc.List(ctx, pagination.Params{Limit: 10, Name: "jo"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Count != 2 {
		t.Errorf("count = %d, want 2", page.Count)
	}
	names := make([]string, len(page.Items))
	for i, u := range page.Items {
		names[i] = u.Name
	}
	sort.Strings(names)
	if strings.Join(names, ",") != "Joanna,John" {
		t.Errorf("names = %v, want [Joanna John]", names)
	}
}

func TestList_CountIgnoresLimit(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, "user"+strconv.Itoa(i), "u@example.com"); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := svc.List(ctx, pagination.Params{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Count != 5 {
		t.Errorf("count = %d, want 5", page.Count)
	}
	if len(page.Items) != 2 {
		t.Errorf("items = %d, want 2", len(page.Items))
	}
}

func TestList_NegativeLimit(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), nil)

	if _, err := svc.List(context.Background(), pagination.Params{Limit: -1}); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestGet(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()
	id, err := svc.Create(ctx, "Ann", "ann@example.com")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Email != "ann@example.com" {
		t.Errorf("email = %q", u.Email)
	}

	if _, err := svc.Get(ctx, "999"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Get missing: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "bad"); !errors.Is(err, domain.ErrInvalidUserID) {
		t.Errorf("Get malformed: expected ErrInvalidUserID, got %v", err)
	}
}
