package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/craftloop/craftloop-backend/api/controllers"
	"github.com/craftloop/craftloop-backend/api/middleware"
	"github.com/craftloop/craftloop-backend/api/routes"
	authsvc "github.com/craftloop/craftloop-backend/internal/auth"
	"github.com/craftloop/craftloop-backend/internal/inventory"
	"github.com/craftloop/craftloop-backend/internal/projects"
	"github.com/craftloop/craftloop-backend/internal/resources"
	"github.com/craftloop/craftloop-backend/internal/tasks"
	"github.com/craftloop/craftloop-backend/internal/users"
	"github.com/craftloop/craftloop-backend/pkg/auth/session"
	"github.com/craftloop/craftloop-backend/pkg/config"
	"github.com/craftloop/craftloop-backend/pkg/db"
	"github.com/craftloop/craftloop-backend/pkg/logger"
	"github.com/craftloop/craftloop-backend/pkg/metrics"
	"github.com/craftloop/craftloop-backend/pkg/migrate"
	"github.com/craftloop/craftloop-backend/pkg/redis"
)

func main() {
	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		println("config:", err.Error())
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "craftloop-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "server exited", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	conn := dbClient.DB()
	userStore := users.NewRepository(conn)
	projectStore := projects.NewRepository(conn)
	taskStore := tasks.NewRepository(conn)
	resourceStore := resources.NewRepository(conn)
	ledgerStore := inventory.NewRepository(conn)

	userSvc := users.NewService(userStore, logg)
	authSvc := authsvc.NewService(userStore, sessions, cfg.JWT, cfg.Password, logg)
	projectSvc := projects.NewService(projectStore, logg)
	taskSvc := tasks.NewService(taskStore, logg)
	resourceSvc := resources.NewService(resourceStore, logg)
	ledgerSvc := inventory.NewService(dbClient, ledgerStore, logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.New(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		Authenticator: middleware.NewAuthenticator(cfg.JWT, sessions, logg),
		RateLimiter:   middleware.NewRateLimiter(redisClient, logg),
		Metrics:       httpMetrics,
		MetricsReg:    registry,

		Health:           controllers.NewHealthController(dbClient, redisClient, logg),
		Auth:             controllers.NewAuthController(authSvc, logg),
		Users:            controllers.NewUsersController(userSvc, logg),
		Resources:        controllers.NewResourcesController(resourceSvc, logg),
		Projects:         controllers.NewProjectsController(projectSvc, logg),
		ProjectResources: controllers.NewProjectResourcesController(ledgerSvc, logg),
		Tasks:            controllers.NewTasksController(taskSvc, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "http server listening on "+server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var shutdownErrs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, err)
	}
	if err := redisClient.Close(); err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, err)
	}
	if err := dbClient.Close(); err != nil {
		shutdownErrs = multierr.Append(shutdownErrs, err)
	}
	return shutdownErrs
}
