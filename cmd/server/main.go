package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/repository"
	"github.com/mamadbah2/warehouse/internal/repository/memory"
	"github.com/mamadbah2/warehouse/internal/repository/mongodb"
	"github.com/mamadbah2/warehouse/internal/repository/sheets"
	"github.com/mamadbah2/warehouse/internal/scheduler"
	"github.com/mamadbah2/warehouse/internal/server/handlers"
	"github.com/mamadbah2/warehouse/internal/server/router"
	authsvc "github.com/mamadbah2/warehouse/internal/service/auth"
	drysvc "github.com/mamadbah2/warehouse/internal/service/dry"
	inventorysvc "github.com/mamadbah2/warehouse/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/warehouse/internal/service/reporting"
	"github.com/mamadbah2/warehouse/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "optional .env file (defaults to ./.env when present)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := openRepository(context.Background(), cfg.MongoDB)
	if err != nil {
		baseLogger.Fatal("failed to init repository", zap.String("backend", cfg.MongoDB.Backend), zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close repository", zap.Error(err))
		}
	}()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}
	cancelIndexes()

	authService := authsvc.NewService(repo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, baseLogger.Named("svc.auth"))
	inventoryService := inventorysvc.NewService(repo, baseLogger.Named("svc.inventory"))
	dryService := drysvc.NewService(repo, baseLogger.Named("svc.dry"))
	reportingService := reportingsvc.NewService(repo, repo, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Inventory: handlers.NewInventoryHandler(inventoryService, time.Now, baseLogger.Named("handlers.inventory")),
		Dry:       handlers.NewDryHandler(dryService, baseLogger.Named("handlers.dry")),
		Reports:   handlers.NewReportHandler(reportingService, time.Now, baseLogger.Named("handlers.reports")),
		Verifier:  authService,
	}, cfg.Server.AllowedOrigins, baseLogger.Named("router"))

	var sink reportingsvc.SheetSink
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sink = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, daily sync disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingService, sink, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.MongoDB.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openRepository(ctx context.Context, cfg config.MongoDBConfig) (repository.Repository, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendMongo:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.URI, cfg.DBName)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Backend)
	}
}
