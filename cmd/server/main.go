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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"oppform/internal/form/cache"
	formhandler "oppform/internal/form/handler"
	"oppform/internal/form/service"
	responsestore "oppform/internal/form/store/response"
	schemastore "oppform/internal/form/store/schema"
	"oppform/internal/geo"
	"oppform/internal/platform/config"
	"oppform/internal/platform/database"
	"oppform/internal/platform/httpserver"
	"oppform/internal/platform/logger"
	"oppform/internal/platform/metrics"
	"oppform/internal/platform/redis"
	"oppform/internal/profile"
	"oppform/internal/storage"
	httptransport "oppform/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres unavailable", slog.Any("error", err))
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			log.Error("schema migration failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", slog.Any("error", err))
		os.Exit(1)
	}

	var (
		schemas   service.SchemaStore
		responses service.ResponseStore
		countries geo.Store
	)
	if db != nil {
		schemas = schemastore.NewPostgres(db)
		responses = responsestore.NewPostgres(db)
		countries = geo.NewPostgres(db)
	} else {
		log.Warn("no DATABASE_URL set, using in-memory stores")
		schemas = schemastore.NewInMemoryStore()
		responses = responsestore.NewInMemoryStore()
		countries = geo.NewInMemoryStore()
	}

	var renderCache cache.RenderCache = cache.NewNop()
	if redisClient != nil {
		defer redisClient.Close()
		renderCache = cache.NewRedis(redisClient.Client, cfg.RenderCacheTTL)
	}

	// File metadata and profiles come from sibling services in production;
	// the in-process stores stand in until those integrations land.
	files := storage.NewVault(storage.NewInMemoryStore())
	profiles := profile.NewInMemoryStore()

	m := metrics.New()
	forms := service.NewService(schemas, responses, countries, files, profiles, renderCache, m, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Forms:     formhandler.New(forms, log),
		Countries: geo.NewHandler(countries, log),
		DB:        db,
		Redis:     redisClient,
		Logger:    log,
	})

	apiServer := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting oppform API", slog.String("addr", cfg.Addr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics endpoint", slog.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
