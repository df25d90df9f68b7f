package observability

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthChecker provides health check functionality over the service's
// external dependencies.
type HealthChecker struct {
	db    *sql.DB
	redis *redis.Client
}

// NewHealthChecker creates a new health checker. Either dependency may be
// nil, in which case it is skipped.
func NewHealthChecker(db *sql.DB, redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{db: db, redis: redisClient}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus represents the health of a single dependency
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check pings each dependency with a short timeout.
func (hc *HealthChecker) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyStatus),
	}

	if hc.db != nil {
		if err := hc.db.PingContext(ctx); err != nil {
			status.Status = "unhealthy"
			status.Dependencies["postgres"] = DependencyStatus{Status: "unhealthy", Message: err.Error()}
		} else {
			status.Dependencies["postgres"] = DependencyStatus{Status: "healthy"}
		}
	}

	if hc.redis != nil {
		if err := hc.redis.Ping(ctx).Err(); err != nil {
			status.Status = "unhealthy"
			status.Dependencies["redis"] = DependencyStatus{Status: "unhealthy", Message: err.Error()}
		} else {
			status.Dependencies["redis"] = DependencyStatus{Status: "healthy"}
		}
	}

	return status
}

// Handler serves the health status as JSON, 503 when unhealthy.
func (hc *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := hc.Check(r.Context())

		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(status)
	})
}
