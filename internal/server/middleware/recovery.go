package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"org-access-registry/internal/platform/httputil"
)

// Recovery turns a handler panic into a 500 JSON error and logs the stack.
func Recovery(logger log.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rv := recover(); rv != nil {
					requestID, _ := RequestID(r.Context())
					logger.WithFields(log.Fields{
						"panic":      rv,
						"request_id": requestID,
						"stack":      string(debug.Stack()),
					}).Error("http: handler panic")
					httputil.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
