package requestid

import (
	"net/http"

	"blog/internal/core/domain/logging"

	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-Id"

// SetRequestIDToContext tags the request with a fresh id that every log line of the request carries.
func SetRequestIDToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set(REQUEST_ID_HEADER, requestID)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), requestID)))
	})
}
