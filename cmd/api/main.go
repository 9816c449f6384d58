package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mkandie/acquisitions/internal/config"
	"github.com/mkandie/acquisitions/internal/db"
	httpx "github.com/mkandie/acquisitions/internal/http"
	"github.com/mkandie/acquisitions/internal/observability"
	"github.com/mkandie/acquisitions/internal/repo/rediscache"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	// tracing is opt-in via OTEL_EXPORTER_OTLP_ENDPOINT

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, "acquisitions", cfg.OTLPEndpoint)

		if err != nil {
			logger.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			sctx, cancel := config.WithTimeout(3 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	if err := db.EnsureAdminUser(ctx, pool, cfg); err != nil {
		logger.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	var rdb *redis.Client

	if cfg.RedisAddr != "" {
		rdb = rediscache.NewClient(rediscache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})

		pctx, cancel := config.WithTimeout(2 * time.Second)
		err := rdb.Ping(pctx).Err()
		cancel()

		if err != nil {
			logger.Warn("redis unreachable, user cache disabled", "err", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	router := httpx.NewRouter(logger, pool, rdb, prom, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down")

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)

	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return
	}

	logger.Info("shutdown complete")
}
