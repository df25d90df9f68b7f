package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/platefwd/orderdesk/pkg/contextkeys"
)

// RequestID attaches a UUID to every request and echoes it in the
// X-Request-ID response header. Incoming X-Request-ID values are honored
// so upstream proxies can correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := contextkeys.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
