package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-records/internal/api/http"
	"github.com/spec-kit/employee-records/internal/api/http/handlers"
	"github.com/spec-kit/employee-records/internal/auth"
	"github.com/spec-kit/employee-records/internal/config"
	"github.com/spec-kit/employee-records/internal/events"
	"github.com/spec-kit/employee-records/internal/observability"
	"github.com/spec-kit/employee-records/internal/persistence"
	"github.com/spec-kit/employee-records/internal/repository"
	"github.com/spec-kit/employee-records/internal/service"
	"github.com/spec-kit/employee-records/internal/worker"
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
	employeeRepo := repository.NewEmployeeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:       accountRepo,
		PasswordResetRepo: resetRepo,
		Dispatcher:        dispatcher,
	})
	employeeService := service.NewEmployeeService(employeeRepo, departmentRepo, dispatcher)
	leaveService := service.NewLeaveService(leaveRepo, employeeRepo, dispatcher)
	reportService := service.NewReportService(employeeRepo, redis, cfg.Reports.CacheTTL(), logger)
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), accountRepo, logger)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Departments:    handlers.NewDepartmentsHandler(employeeService),
		Leaves:         handlers.NewLeavesHandler(leaveService),
		Reports:        handlers.NewReportsHandler(reportService),
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
