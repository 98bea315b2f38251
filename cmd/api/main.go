package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_catalog/internal/adapters/http_server"
	"hotel_catalog/internal/adapters/memcached"
	"hotel_catalog/internal/adapters/memory"
	"hotel_catalog/internal/adapters/observability"
	redisad "hotel_catalog/internal/adapters/redis"
	"hotel_catalog/internal/adapters/suppliers"
	"hotel_catalog/internal/app"
	"hotel_catalog/internal/domain"
	"hotel_catalog/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load(os.Getenv("HOTELS_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// catalog: a failed first build is fatal, there is nothing to serve
	fetcher := suppliers.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchRPS, cfg.FetchRetries)
	agg := app.NewAggregationService(suppliers.Default(cfg.Endpoints()), fetcher, cfg.FetchWorkers)
	c, err := agg.FetchAndMerge(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("initial catalog build failed")
	}
	log.Info().Str("run_id", c.RunID()).Int("hotels", c.Len()).Msg("catalog ready")

	// deps
	cache := newCache(ctx, cfg)
	q := app.NewQueryService(agg, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Rebuild: agg})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// newCache picks redis, then memcached, then the in-process cache.
// An unreachable redis is logged and skipped; queries never depend on the cache.
func newCache(ctx context.Context, cfg shared.Config) domain.Cache {
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := rc.Ping(pingCtx)
		if err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("query cache: redis")
			return rc
		}
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, falling back")
		_ = rc.Close()
	}
	switch {
	case cfg.MemcachedAddr != "":
		log.Info().Str("addr", cfg.MemcachedAddr).Msg("query cache: memcached")
		return memcached.New(cfg.MemcachedAddr)
	default:
		log.Info().Msg("query cache: in-process")
		return memory.New(1000)
	}
}
