package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"org-access-registry/internal/db"
	"org-access-registry/internal/platform/httputil"
)

// readinessTimeout bounds the document store ping of /readyz.
const readinessTimeout = 2 * time.Second

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// Handler serves liveness and readiness probes.
type Handler struct {
	pinger db.Pinger
}

// NewHandler returns a health Handler. pinger may be nil; then readiness skips the store ping.
func NewHandler(pinger db.Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// RegisterRoutes mounts /healthz and /readyz on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.readiness).Methods(http.MethodGet)
}

func (h *Handler) liveness(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteSuccess(w, StatusResponse{Status: "ok"})
}

func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			log.WithError(err).Warn("health: document store ping failed")
			_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
			return
		}
	}
	_ = httputil.WriteSuccess(w, StatusResponse{Status: "ready"})
}
