// Package observability provides structured logging, Prometheus metrics,
// and health checks.
//
// # Structured Logging
//
// Create a logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("request_id", reqID).Info("request admitted")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.AuthzDecisionsTotal.WithLabelValues("denied").Inc()
//
// # Health Checks
//
// Configure a health checker over the Postgres handle and Redis client:
//
//	checker := observability.NewHealthChecker(db, redisClient)
//	http.Handle("/healthz", checker.Handler())
package observability
