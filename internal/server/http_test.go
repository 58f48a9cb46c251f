package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"org-access-registry/internal/organization/domain"
	orgservice "org-access-registry/internal/organization/service"
	"org-access-registry/internal/platform/pagination"
	"org-access-registry/internal/server/middleware"
)

// mockPinger implements db.Pinger for tests.
type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error { return m.err }

// mockOrgRepo implements orgrepo.Repository for tests.
type mockOrgRepo struct {
	orgs map[string]*domain.Org
}

func (m *mockOrgRepo) Create(ctx context.Context, o *domain.Org) error {
	o.ID = "id-" + o.Name
	m.orgs[o.Name] = o
	return nil
}

func (m *mockOrgRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, ok := m.orgs[name]
	return ok, nil
}

func (m *mockOrgRepo) List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.Org], error) {
	return &pagination.Page[*domain.Org]{}, nil
}

func newTestServer(t *testing.T, deps Deps) *httptest.Server {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	deps.Logger = logger
	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestNewRouter_Health(t *testing.T) {
	srv := newTestServer(t, Deps{HealthPinger: mockPinger{}})

	resp, _ := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}

	resp, _ = get(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("readyz status = %d", resp.StatusCode)
	}
}

func TestNewRouter_ReadinessFailure(t *testing.T) {
	srv := newTestServer(t, Deps{HealthPinger: mockPinger{err: errors.New("down")}})

	resp, _ := get(t, srv.URL+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("readyz status = %d, want 503", resp.StatusCode)
	}
}

func TestNewRouter_NotFound(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp, body := get(t, srv.URL+"/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if strings.TrimSpace(body) != `{"error":"Not found"}` {
		t.Errorf("body = %s", body)
	}
}

func TestNewRouter_OrgRoutesAndMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	orgs := orgservice.NewOrgService(&mockOrgRepo{orgs: make(map[string]*domain.Org)}, nil)
	srv := newTestServer(t, Deps{Orgs: orgs, Registry: registry})

	resp, err := http.Post(srv.URL+"/orgs", "application/json", strings.NewReader(`{"name":"Acme"}`))
	if err != nil {
		t.Fatalf("POST /orgs: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /orgs status = %d", resp.StatusCode)
	}

	resp, body := get(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `http_requests_total{method="POST",route="/orgs",status="200"} 1`) {
		t.Errorf("metrics output missing org request counter:\n%s", body)
	}
}

func TestNewRouter_MethodNotAllowed(t *testing.T) {
	orgs := orgservice.NewOrgService(&mockOrgRepo{orgs: make(map[string]*domain.Org)}, nil)
	srv := newTestServer(t, Deps{Orgs: orgs})

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/orgs", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /orgs: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
