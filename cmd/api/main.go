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
	"golang.org/x/sync/errgroup"

	"agoda_hotel/internal/adapters/agoda"
	server "agoda_hotel/internal/adapters/http_server"
	"agoda_hotel/internal/adapters/observability"
	redisad "agoda_hotel/internal/adapters/redis"
	"agoda_hotel/internal/app"
	"agoda_hotel/internal/domain"
	"agoda_hotel/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, os.Stdout)
	observability.SetLevel(cfg.LogLevel)

	if cfg.ArchivePath == "" {
		log.Fatal().Msg("CATALOG_ARCHIVE is required")
	}

	reg := observability.InitRegistry()

	// catalog
	cat, err := agoda.Load(cfg.ArchivePath)
	if err != nil {
		log.Fatal().Err(err).Str("archive", cfg.ArchivePath).Msg("catalog load failed")
	}

	// cache is optional
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "agoda:")
		if err := rc.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, URL lookups will not be cached")
		} else {
			cache = rc
			defer rc.Close()
		}
	}
	q := app.NewQueryService(cat, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RateLimitRPS)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Int("hotels", cat.Len()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(sctx)
		}
		return httpSrv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
