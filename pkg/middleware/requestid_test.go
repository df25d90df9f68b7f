package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platefwd/orderdesk/pkg/contextkeys"
)

func TestRequestID(t *testing.T) {
	var captured string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = contextkeys.GetRequestID(r.Context())
	})
	handler := RequestID(next)

	t.Run("generates an id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, captured)
		assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	})

	t.Run("honors an incoming id", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Request-ID", "upstream-id")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, "upstream-id", captured)
		assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
	})
}
