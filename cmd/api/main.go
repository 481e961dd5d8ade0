package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/ownshop-backend/api/routes"
	"github.com/angelmondragon/ownshop-backend/internal/auth"
	"github.com/angelmondragon/ownshop-backend/internal/catalog"
	"github.com/angelmondragon/ownshop-backend/internal/cron"
	"github.com/angelmondragon/ownshop-backend/internal/store"
	"github.com/angelmondragon/ownshop-backend/internal/verifications"
	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"github.com/angelmondragon/ownshop-backend/pkg/db"
	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/instance"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
	"github.com/angelmondragon/ownshop-backend/pkg/metrics"
	"github.com/angelmondragon/ownshop-backend/pkg/migrate"
	"github.com/angelmondragon/ownshop-backend/pkg/redis"
	"github.com/angelmondragon/ownshop-backend/pkg/security"
)

const (
	adminEmail      = "admin@example.com"
	shutdownTimeout = 15 * time.Second
)

// kvProvider hands each device its own scoped key-value store.
type kvProvider interface {
	Scope(deviceID string) kv.Store
}

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
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params := routes.Params{Config: cfg, Logger: logg}

	var (
		catalogSource catalog.Source = catalog.SeedSource{Delay: cfg.Store.CatalogDelay}
		archiver      *verifications.Archiver
	)
	if cfg.DB.Enabled() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}

		catalogRepo := catalog.NewRepository(dbClient.DB())
		if strings.EqualFold(cfg.Store.CatalogSource, config.CatalogSourceDB) {
			if _, err := catalogRepo.Seed(ctx, catalog.SeedProducts()); err != nil {
				logg.Error(ctx, "failed to seed catalog", err)
				os.Exit(1)
			}
			catalogSource = catalog.RepoSource{Repo: catalogRepo, Delay: cfg.Store.CatalogDelay}
		}
		archiver = verifications.NewArchiver(verifications.NewRepository(dbClient.DB()), logg)
		params.DB = dbClient
	}

	memoryKV := kv.NewMemory()
	var (
		kvStores kvProvider = memoryKV
		onEvict  func(string)
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		if strings.EqualFold(cfg.Store.KVBackend, config.KVBackendRedis) {
			kvStores = kv.NewRedis(redisClient, cfg.JWT.DeviceTokenTTL)
		}
		params.Redis = redisClient
		params.RateLimiter = redisClient
	}

	// Redis keys expire on their own; in-memory ones leave with their store.
	if _, inMemory := kvStores.(*kv.Memory); inMemory {
		onEvict = memoryKV.Forget
	}

	seedRoster, err := buildSeedRoster(cfg)
	if err != nil {
		logg.Error(ctx, "failed to hash admin password", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(promRegistry)
	jobMetrics := metrics.NewJobMetrics(promRegistry)
	params.Gatherer = promRegistry

	credentials := auth.NewChecker(cfg.Store)
	banner := models.Banner{Title: cfg.Store.BannerTitle, ImageURL: cfg.Store.BannerImageURL}

	registry, err := store.NewRegistry(store.RegistryParams{
		Logger:       logg,
		IdleTTL:      cfg.Store.DeviceIdleTTL,
		OnSizeChange: storeMetrics.SetActiveDevices,
		OnEvict:      onEvict,
		Factory: func(deviceID string) (*store.Store, error) {
			st, err := store.New(store.Options{
				DeviceID:    deviceID,
				Catalog:     catalogSource,
				KV:          kvStores.Scope(deviceID),
				Credentials: credentials,
				Logger:      logg,
				SignInDelay: cfg.Store.SignInDelay,
				Banner:      &banner,
				SeedRoster:  seedRoster,
			})
			if err != nil {
				return nil, err
			}
			st.Subscribe(store.MetricsListener(storeMetrics))
			if archiver != nil {
				st.Subscribe(archiver.Listener())
			}
			return st, nil
		},
	})
	if err != nil {
		logg.Error(ctx, "failed to create store registry", err)
		os.Exit(1)
	}
	defer registry.Close()
	params.Stores = registry

	janitor, err := newJanitor(cfg, logg, registry, jobMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create device janitor", err)
		os.Exit(1)
	}
	go func() {
		if err := janitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "device janitor stopped", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"instance":       instance.GetID(),
		"catalog_source": cfg.Store.CatalogSource,
		"kv_backend":     cfg.Store.KVBackend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(params),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "api server shutdown failed", err)
		}
		logg.Info(shutdownCtx, "api server shut down gracefully")
	}
}

// buildSeedRoster hashes the configured admin password into the seed roster.
// Without one the admin keeps signing in with the sentinel.
func buildSeedRoster(cfg *config.Config) ([]models.User, error) {
	roster := store.DefaultRoster()
	if cfg.Store.AdminPassword == "" {
		return roster, nil
	}
	hash, err := security.HashPassword(cfg.Store.AdminPassword, cfg.Password)
	if err != nil {
		return nil, err
	}
	return store.WithPasswordHash(roster, adminEmail, hash), nil
}

// newJanitor evicts idle device stores. Stores are process-local, so a local
// lock is enough.
func newJanitor(cfg *config.Config, logg *logger.Logger, registry *store.Registry, jobMetrics *metrics.JobMetrics) (*cron.Service, error) {
	evictor, err := cron.NewDeviceEvictionJob(logg, registry)
	if err != nil {
		return nil, err
	}
	return cron.NewService(cron.ServiceParams{
		Logger:         logg,
		Registry:       cron.NewRegistry(evictor),
		Lock:           &cron.LocalLock{},
		Metrics:        jobMetrics,
		Interval:       cfg.Store.JanitorInterval,
		SkipInitialRun: true,
	})
}
