package httputil

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"org-access-registry/internal/db"
)

// WriteUnexpectedError writes a response for an error the handler has no specific mapping for:
// 503 when the document store is unreachable, 500 otherwise. The error is logged, not returned to the client.
func WriteUnexpectedError(w http.ResponseWriter, r *http.Request, err error) {
	entry := log.WithError(err).WithFields(log.Fields{"method": r.Method, "path": r.URL.Path})
	if errors.Is(err, db.ErrUnavailable) {
		entry.Warn("http: document store unavailable")
		WriteServiceUnavailable(w, "document store unavailable")
		return
	}
	entry.Error("http: unexpected error")
	WriteInternalError(w)
}
