// Package server assembles the HTTP router from the entity handlers and the middleware chain.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"org-access-registry/internal/db"
	healthhandler "org-access-registry/internal/health/handler"
	orghandler "org-access-registry/internal/organization/handler"
	orgservice "org-access-registry/internal/organization/service"
	permissionhandler "org-access-registry/internal/permission/handler"
	permissionservice "org-access-registry/internal/permission/service"
	"org-access-registry/internal/platform/httputil"
	"org-access-registry/internal/platform/pagination"
	"org-access-registry/internal/server/middleware"
	"org-access-registry/internal/telemetry"
	userhandler "org-access-registry/internal/user/handler"
	userservice "org-access-registry/internal/user/service"
)

// Deps holds the services and infrastructure the router is built from.
type Deps struct {
	Users       *userservice.UserService
	Orgs        *orgservice.OrgService
	Permissions *permissionservice.Manager
	// HealthPinger is used by /readyz. If nil, readiness skips the store ping.
	HealthPinger db.Pinger
	// Emitter receives one http_request event per request. If nil, no telemetry events are emitted.
	Emitter telemetry.EventEmitter
	// Registry collects the HTTP metrics and is served on /metrics. If nil, a fresh registry is used.
	Registry *prometheus.Registry
	// Logger is used by the logging and recovery middleware. If nil, the logrus standard logger is used.
	Logger log.FieldLogger
	// DefaultPageLimit applies to listings without a limit. Zero falls back to pagination.DefaultLimit.
	DefaultPageLimit int64
}

// probeRoutes are excluded from telemetry events.
var probeRoutes = map[string]bool{"/healthz": true, "/readyz": true, "/metrics": true}

// NewRouter builds the HTTP handler: the gorilla/mux router with every endpoint, wrapped in
// request id, recovery, logging, Prometheus and telemetry middleware, and finally otelhttp.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	limit := deps.DefaultPageLimit
	if limit == 0 {
		limit = pagination.DefaultLimit
	}
	metrics := middleware.NewMetrics(registry)

	r := mux.NewRouter()
	r.Use(
		middleware.RequestIDMiddleware,
		middleware.Recovery(logger),
		middleware.Logging(logger),
		metrics.Middleware,
		middleware.Telemetry(deps.Emitter, probeRoutes),
	)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	healthhandler.NewHandler(deps.HealthPinger).RegisterRoutes(r)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})).Methods(http.MethodGet)
	if deps.Users != nil {
		userhandler.NewHandler(deps.Users, limit).RegisterRoutes(r)
	}
	if deps.Orgs != nil {
		orghandler.NewHandler(deps.Orgs, limit).RegisterRoutes(r)
	}
	if deps.Permissions != nil {
		permissionhandler.NewHandler(deps.Permissions, limit).RegisterRoutes(r)
	}

	return otelhttp.NewHandler(r, "org-access-registry")
}
