package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mstore-labs/pim-backend/api/routes"
	"github.com/mstore-labs/pim-backend/internal/catalog"
	"github.com/mstore-labs/pim-backend/internal/monitoring"
	"github.com/mstore-labs/pim-backend/internal/status"
	"github.com/mstore-labs/pim-backend/internal/variants"
	"github.com/mstore-labs/pim-backend/pkg/config"
	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/logger"
	"github.com/mstore-labs/pim-backend/pkg/metrics"
	"github.com/mstore-labs/pim-backend/pkg/migrate"
	"github.com/mstore-labs/pim-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Status.CacheEnabled {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "status report cache disabled, skipping redis")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	statusMetrics := metrics.NewStatusMetrics(registry)

	var policyFlusher monitoring.StatusCacheFlusher
	if redisClient != nil {
		policyFlusher = redisClient
	}
	policyStore, err := monitoring.NewStore(dbClient, policyFlusher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create monitoring store", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog repository", err)
		os.Exit(1)
	}

	var reportCache status.ReportCache
	if cache := status.NewCache(redisClient, cfg.Status, logg); cache != nil {
		reportCache = cache
	}

	statusService, err := status.NewService(
		catalogRepo,
		policyStore,
		reportCache,
		cfg.Status.ImportGracePeriod,
		statusMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create status service", err)
		os.Exit(1)
	}

	sessions := variants.NewRegistry(cfg.Variants.SessionTTL, logg)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sessions.Run(sweepCtx, cfg.Variants.SweepInterval)

	var cachePinger db.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	router := routes.NewRouter(routes.Deps{
		Cfg:            cfg,
		Logg:           logg,
		DBPinger:       dbClient,
		CachePinger:    cachePinger,
		StatusService:  statusService,
		PolicyStore:    policyStore,
		Products:       catalogRepo,
		Sessions:       sessions,
		VariantBackend: variants.NewDBApplier(dbClient),
		ShopVariants:   variants.NewShopVariantSource(dbClient),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
