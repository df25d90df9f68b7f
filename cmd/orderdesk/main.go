package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/platefwd/orderdesk/pkg/api"
	"github.com/platefwd/orderdesk/pkg/auth"
	"github.com/platefwd/orderdesk/pkg/config"
	"github.com/platefwd/orderdesk/pkg/members"
	"github.com/platefwd/orderdesk/pkg/middleware"
	"github.com/platefwd/orderdesk/pkg/observability"
	"github.com/platefwd/orderdesk/pkg/tenancy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging.Level, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Error("failed to open database")
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.WithError(err).Error("failed to ping database")
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable, rate limiting degraded to fail-open")
		}
	}

	provider, err := auth.NewOIDCProvider(ctx, auth.OIDCConfig{
		IssuerURL:  cfg.Identity.IssuerURL,
		ClientID:   cfg.Identity.ClientID,
		AdminClaim: cfg.Identity.AdminClaim,
	})
	if err != nil {
		logger.WithError(err).Error("failed to initialize identity provider")
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	store := tenancy.NewPostgresStore(db)
	resolver := tenancy.NewResolver(store)
	checker := tenancy.NewAccessChecker(store)
	membersSvc := members.NewService(db)
	storage := api.NewPostgresStorage(db)

	server := api.NewServer(storage, resolver, checker, membersSvc, logger, metrics)

	sweeper := members.NewSweeper(membersSvc, logger)
	if err := sweeper.Start(); err != nil {
		logger.WithError(err).Error("failed to start invitation sweeper")
		os.Exit(1)
	}
	defer sweeper.Stop()

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(metrics.HTTPMiddleware)
	router.Use(middleware.Authenticate(provider))

	if redisClient != nil {
		limiter := middleware.NewDistributedRateLimiter(redisClient, nil, "orderdesk")
		router.Use(limiter.Handler)
	}

	accountRouter := router.PathPrefix("/api/v1").Subrouter()
	server.RegisterAccountRoutes(accountRouter)

	customerRouter := router.PathPrefix("/api/v1").Subrouter()
	customerRouter.Use(middleware.RequireCustomer(store))
	server.RegisterRoutes(customerRouter)

	adminRouter := router.PathPrefix("/api/v1/admin").Subrouter()
	adminRouter.Use(middleware.RequireAdmin)
	server.RegisterAdminRoutes(adminRouter)

	apiServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	health := observability.NewHealthChecker(db, redisClient)
	healthMux := http.NewServeMux()
	healthMux.Handle("/healthz", health.Handler())
	healthMux.Handle("/readyz", health.Handler())
	healthMux.Handle("/metrics", metrics.Handler())
	healthServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("starting API server")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("starting health/metrics server")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("API server shutdown error")
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("health server shutdown error")
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				metrics.DBConnectionsActive.Set(float64(db.Stats().InUse))
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("server error")
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
