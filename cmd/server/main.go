package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dukerupert/ukpostcode/internal"
	"github.com/dukerupert/ukpostcode/internal/address"
	"github.com/dukerupert/ukpostcode/internal/handler/api"
	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/router"
	"github.com/dukerupert/ukpostcode/internal/routes"
	"github.com/dukerupert/ukpostcode/internal/telemetry"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Metrics
	var (
		businessMetrics *telemetry.BusinessMetrics
		httpMetrics     *middleware.Metrics
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		httpMetrics = middleware.NewMetrics(cfg.Metrics.Namespace, reg)
		businessMetrics = telemetry.NewBusinessMetrics(cfg.Metrics.Namespace, reg)
		logger.Info("Metrics initialized", "namespace", cfg.Metrics.Namespace)
	}

	// Address validator (format checks only, no external provider)
	addressValidator := address.NewBasicValidator()

	deps := routes.APIDeps{
		PostcodeHandler: api.NewPostcodeHandler(businessMetrics, logger),
		AddressHandler:  api.NewAddressHandler(addressValidator, businessMetrics, logger),
		MaxBodyBytes:    cfg.HTTP.MaxBodyBytes,
	}

	// Per-client rate limiting on the API
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiterConfig := middleware.DefaultRateLimiterConfig()
		limiterConfig.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limiterConfig.BurstSize = cfg.RateLimit.Burst
		if cfg.RateLimit.TrustProxy {
			limiterConfig.KeyFunc = middleware.GetClientIP
		}
		limiter := middleware.NewRateLimiter(limiterConfig)
		defer limiter.Stop()
		deps.RateLimit = limiter.Middleware
		logger.Info("Rate limiting enabled", "rps", limiterConfig.RequestsPerSecond, "burst", limiterConfig.BurstSize, "trust_proxy", cfg.RateLimit.TrustProxy)
	}

	// ==========================================================================
	// Router
	// ==========================================================================

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env != "prod" {
		securityConfig.HSTSMaxAge = 0
	}

	chain := []router.Middleware{
		router.Recovery(logger),
		middleware.RequestID,
		middleware.SecurityHeaders(securityConfig),
		middleware.WithRequestLogger(logger),
	}
	if httpMetrics != nil {
		chain = append(chain, httpMetrics.Middleware)
	}
	chain = append(chain, router.Logger(logger))

	r := router.New(chain...)

	if httpMetrics != nil {
		r.Handle(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterAPIRoutes(r, deps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", cfg.HTTP.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
