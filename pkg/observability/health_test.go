package observability

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		db, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		defer db.Close()

		hc := NewHealthChecker(db, nil)
		status := hc.Check(context.Background())

		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "healthy", status.Dependencies["postgres"].Status)
		_, hasRedis := status.Dependencies["redis"]
		assert.False(t, hasRedis)
	})

	t.Run("closed database is unhealthy", func(t *testing.T) {
		db, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		db.Close()

		hc := NewHealthChecker(db, nil)
		status := hc.Check(context.Background())

		assert.Equal(t, "unhealthy", status.Status)
	})

	t.Run("handler status codes", func(t *testing.T) {
		db, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		defer db.Close()

		w := httptest.NewRecorder()
		NewHealthChecker(db, nil).Handler().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		closed, err := sql.Open("sqlite3", ":memory:")
		require.NoError(t, err)
		closed.Close()

		w = httptest.NewRecorder()
		NewHealthChecker(closed, nil).Handler().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
