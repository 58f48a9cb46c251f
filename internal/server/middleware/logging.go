package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Logging writes one structured entry per request after it completes.
// 5xx responses are logged at error level, 4xx at warn, everything else at info.
func Logging(logger log.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			requestID, _ := RequestID(r.Context())
			entry := logger.WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  requestID,
				"client_ip":   ClientIP(r.Context()),
			})
			switch {
			case rec.status >= http.StatusInternalServerError:
				entry.Error("http request")
			case rec.status >= http.StatusBadRequest:
				entry.Warn("http request")
			default:
				entry.Info("http request")
			}
		})
	}
}
