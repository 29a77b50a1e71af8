package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accessapp "github.com/agency/backend/internal/application/access"
	agencyapp "github.com/agency/backend/internal/application/agency"
	sidebarapp "github.com/agency/backend/internal/application/sidebar"
	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/cache"
	"github.com/agency/backend/internal/infrastructure/config"
	"github.com/agency/backend/internal/infrastructure/event"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/infrastructure/metrics"
	"github.com/agency/backend/internal/infrastructure/migration"
	"github.com/agency/backend/internal/infrastructure/persistence"
	"github.com/agency/backend/internal/infrastructure/telemetry"
	"github.com/agency/backend/internal/interfaces/http/handler"
	"github.com/agency/backend/internal/interfaces/http/middleware"
	"github.com/agency/backend/internal/interfaces/http/router"
	"github.com/agency/backend/migrations"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const eventQueueSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
		Env:        cfg.App.Env,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting agency backend",
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.Open(ctx, &cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	log.Info("Database connected successfully")

	if err := migrateUp(cfg.Database.DSN(), log); err != nil {
		_ = db.Close()
		return err
	}

	optionCache, err := cache.NewSidebarCacheFactory(cfg.Redis, cfg.Sidebar.CacheTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateCache()
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create sidebar cache: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Telemetry.MetricsEnabled {
		m = metrics.New("")
		m.Registry().MustRegister(collectors.NewDBStatsCollector(db.SQL(), cfg.Database.DBName))
	}

	optionRepo := persistence.NewGormSidebarOptionRepository(db.DB)
	grantRepo := persistence.NewGormPermissionGrantRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	agencyRepo := persistence.NewGormAgencyRepository(db.DB)
	subAccountRepo := persistence.NewGormSubAccountRepository(db.DB)

	bus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch(eventQueueSize))
	bus.Subscribe(accessapp.NewAuditTrailHandler(auditRepo, m, log), access.EventTypePermissionToggled)
	if err := bus.Start(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("start event bus: %w", err)
	}

	sidebarService := sidebarapp.NewSidebarService(optionRepo, grantRepo,
		sidebarapp.WithCache(optionCache),
		sidebarapp.WithCategorizer(newCategorizer(cfg.Sidebar)),
		sidebarapp.WithMetrics(m),
		sidebarapp.WithLogger(log),
	)
	permissionService := accessapp.NewPermissionService(grantRepo, auditRepo, optionRepo, subAccountRepo, bus, m, log)
	agencyService := agencyapp.NewAgencyService(agencyRepo, subAccountRepo, optionRepo, bus, log)

	var limiter *middleware.RateLimiter
	if cfg.HTTP.WriteRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.HTTP.WriteRateLimit, cfg.HTTP.WriteRateWindow)
	}

	engine, err := router.NewEngine(router.Handlers{
		Sidebar: handler.NewSidebarHandler(sidebarService),
		Access:  handler.NewAccessHandler(permissionService),
		Agency:  handler.NewAgencyHandler(agencyService),
		System:  handler.NewSystemHandler(cfg.App.Name, version, db),
	}, router.Options{
		Logger:  log,
		HTTP:    cfg.HTTP,
		Metrics: m,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		WriteLimiter: limiter,
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		// drain queued audit events before the database goes away
		err = errors.Join(err, bus.Stop(shutdownCtx))
		if limiter != nil {
			limiter.Stop()
		}
		err = errors.Join(err, optionCache.Close(), tp.Shutdown(shutdownCtx), db.Close())
		return err
	})
	return g.Wait()
}

// migrateUp applies pending migrations over a dedicated connection so that
// closing the migrator leaves the application pool untouched
func migrateUp(dsn string, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	if err := m.Up(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// newCategorizer falls back to the built-in table when none is configured
func newCategorizer(cfg config.SidebarConfig) *sidebar.Categorizer {
	if len(cfg.Categories) == 0 {
		return sidebar.DefaultCategorizer()
	}
	return sidebar.NewCategorizer(cfg.Categories, cfg.CategoryOrder)
}
