// Command api serves the lifestats dashboard API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/lifestats/internal/api"
	"github.com/blaisecz/lifestats/internal/api/handler"
	"github.com/blaisecz/lifestats/internal/config"
	"github.com/blaisecz/lifestats/internal/logger"
	"github.com/blaisecz/lifestats/internal/repository"
	"github.com/blaisecz/lifestats/internal/seed"
	"github.com/blaisecz/lifestats/internal/service"
	"github.com/blaisecz/lifestats/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "api")
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database migration completed")

	if cfg.Seed {
		log.Info("Seeding database with sample data (SEED=true)")
		if err := seed.Run(ctx, db, log.Named("seed")); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	userRepo := repository.NewUserRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	workRepo := repository.NewWorkRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	userService := service.NewUserService(userRepo)
	sleepService := service.NewSleepService(sleepRepo, userRepo)
	integrationService := service.NewIntegrationService(integrationRepo, userRepo)
	journalService := service.NewJournalService(journalRepo, userRepo)
	workHoursService := service.NewWorkHoursService(
		userRepo, sleepRepo, workRepo,
		cfg.FallbackOffsetMinutes,
		service.WorkHoursCacheOptions{TTL: cfg.DashboardCacheTTL, MaxSize: cfg.DashboardCacheSize},
		log,
	)

	router := api.NewRouter(
		log,
		handler.NewUserHandler(userService, log),
		handler.NewSleepHandler(sleepService, log),
		handler.NewWorkHoursHandler(workHoursService, log),
		handler.NewIntegrationHandler(integrationService, log),
		handler.NewJournalHandler(journalService, log),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
