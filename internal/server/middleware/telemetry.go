package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"org-access-registry/internal/telemetry"
	"org-access-registry/internal/telemetry/domain"
)

// EventTypeHTTPRequest is the telemetry event type emitted once per request.
const EventTypeHTTPRequest = "http_request"

// httpRequestMetadata is the JSON shape stored in Event.Metadata for http_request events.
type httpRequestMetadata struct {
	Method     string `json:"method"`
	Route      string `json:"route"`
	StatusCode int    `json:"status_code"`
	DurationMs int64  `json:"duration_ms"`
	ClientIP   string `json:"client_ip"`
}

// Telemetry emits an http_request event after each request. Best-effort: emission runs in the
// background and failures are logged. If emitter is nil, the middleware no-ops.
// skipRoutes is the set of route templates not to emit (e.g. /healthz).
func Telemetry(emitter telemetry.EventEmitter, skipRoutes map[string]bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := routeTemplate(r)
			if emitter == nil || skipRoutes[route] {
				return
			}
			meta, _ := json.Marshal(httpRequestMetadata{
				Method:     r.Method,
				Route:      route,
				StatusCode: rec.status,
				DurationMs: time.Since(start).Milliseconds(),
				ClientIP:   ClientIP(r.Context()),
			})
			requestID, _ := RequestID(r.Context())
			telemetry.EmitAsync(emitter, r.Context(), &domain.Event{
				RequestID: requestID,
				EventType: EventTypeHTTPRequest,
				Source:    "http_middleware",
				Metadata:  meta,
				CreatedAt: time.Now().UTC(),
			})
		})
	}
}
