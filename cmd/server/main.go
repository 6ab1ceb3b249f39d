package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"domainlookup/internal/platform/config"
	"domainlookup/internal/platform/httpserver"
	"domainlookup/internal/platform/logger"
	httpmetrics "domainlookup/internal/platform/metrics"
	"domainlookup/internal/platform/middleware"
	"domainlookup/internal/platform/redis"
	"domainlookup/internal/whois/app"
	"domainlookup/internal/whois/cache"
	"domainlookup/internal/whois/handler"
	lookupmetrics "domainlookup/internal/whois/metrics"
	"domainlookup/internal/whois/service"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Lookup logic lives in internal/whois.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	lookupCache, redisClient, err := buildCache(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("closing redis", "error", err)
			}
		}()
	}

	svc, err := app.NewLookupService(cfg.Lookup, log,
		service.WithCache(lookupCache),
		service.WithMetrics(lookupmetrics.New(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return err
	}

	handlerOpts := []handler.Option{handler.WithBatchConcurrency(cfg.Lookup.BatchConcurrency)}
	if redisClient != nil {
		handlerOpts = append(handlerOpts, handler.WithHealthChecker(redisClient))
	}
	h := handler.New(svc, log, httpmetrics.New(prometheus.DefaultRegisterer), handlerOpts...)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Handle("/metrics", promhttp.Handler())
	h.Register(r)

	srv := httpserver.New(cfg.Server.Addr, r)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting domain lookup server",
			"addr", cfg.Server.Addr,
			"strategy", cfg.Lookup.Strategy,
			"max_follow", cfg.Lookup.MaxFollow,
			"redis", redisClient != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildCache returns the Redis-backed cache when REDIS_URL is set and the
// in-process cache otherwise.
func buildCache(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (service.Cache, *redis.Client, error) {
	client, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Info("redis not configured, using in-memory cache")
		return cache.NewMemoryStore(), nil, nil
	}
	return cache.NewRedisStore(client.Client, cfg.CacheTTL), client, nil
}
