package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/society-portal/internal/api/http"
	"github.com/spec-kit/society-portal/internal/api/http/handlers"
	"github.com/spec-kit/society-portal/internal/auth"
	"github.com/spec-kit/society-portal/internal/config"
	"github.com/spec-kit/society-portal/internal/events"
	"github.com/spec-kit/society-portal/internal/observability"
	"github.com/spec-kit/society-portal/internal/persistence"
	"github.com/spec-kit/society-portal/internal/repository"
	"github.com/spec-kit/society-portal/internal/service"
	"github.com/spec-kit/society-portal/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	billRepo := repository.NewBillRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, accountRepo, dispatcher, logger)
	billingService := service.NewBillingService(cfg.Billing, service.BillingDependencies{
		BillRepo:    billRepo,
		PaymentRepo: paymentRepo,
		AccountRepo: accountRepo,
		Redis:       redis,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Bills:          handlers.NewBillsHandler(billingService),
		Residents:      handlers.NewResidentsHandler(billingService),
		Stats:          handlers.NewStatsHandler(billingService),
		ResidentBills:  handlers.NewResidentBillsHandler(billingService),
		AuthMiddleware: authMiddleware,
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
