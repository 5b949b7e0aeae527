package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/airport-dashboard/internal/api/http"
	"github.com/spec-kit/airport-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/airport-dashboard/internal/auth"
	"github.com/spec-kit/airport-dashboard/internal/config"
	"github.com/spec-kit/airport-dashboard/internal/datasource"
	"github.com/spec-kit/airport-dashboard/internal/events"
	"github.com/spec-kit/airport-dashboard/internal/observability"
	"github.com/spec-kit/airport-dashboard/internal/persistence"
	"github.com/spec-kit/airport-dashboard/internal/repository"
	"github.com/spec-kit/airport-dashboard/internal/service"
	"github.com/spec-kit/airport-dashboard/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	simulator := datasource.NewSimulator()
	cache := datasource.NewCache(redis.Client, cfg.DataSource.CacheTTL(), logger)
	aggregator := datasource.NewAggregator(simulator.Providers(), cfg.DataSource.ProviderTimeout(), cache, logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	identityService := service.NewIdentityService(*cfg, service.IdentityDependencies{
		UserRepo:   userRepo,
		Aggregator: aggregator,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
	})

	if err := identityService.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}

	sessionGate := auth.NewSessionGate(identityService.TokenManager(), userRepo, logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(pg, redis),
		Auth:          handlers.NewAuthHandler(identityService),
		Pages:         handlers.NewPagesHandler(),
		Users:         handlers.NewUsersHandler(identityService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		AirportData:   handlers.NewAirportDataHandler(aggregator, simulator, identityService, logger),
		SessionGate:   sessionGate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
