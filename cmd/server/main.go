package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/cache"
	"github.com/mamadbah2/dairybook/internal/config"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/repository/sheets"
	"github.com/mamadbah2/dairybook/internal/scheduler"
	"github.com/mamadbah2/dairybook/internal/server/handlers"
	"github.com/mamadbah2/dairybook/internal/server/router"
	authsvc "github.com/mamadbah2/dairybook/internal/service/auth"
	milksvc "github.com/mamadbah2/dairybook/internal/service/milk"
	purchasingsvc "github.com/mamadbah2/dairybook/internal/service/purchasing"
	reportingsvc "github.com/mamadbah2/dairybook/internal/service/reporting"
	"github.com/mamadbah2/dairybook/pkg/clients/notify"
	"github.com/mamadbah2/dairybook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	var reportCache cache.ReportCache = cache.NoopReportCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisReportCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			baseLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				baseLogger.Error("failed to close redis connection", zap.Error(err))
			}
		}()
		reportCache = redisCache
		baseLogger.Info("report cache enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		baseLogger.Warn("no redis address configured, report caching disabled")
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
	} else {
		baseLogger.Warn("sheet export not configured")
	}

	var notifier notify.Client = notify.Noop{}
	if cfg.NotifyEnabled() {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("notification client enabled")
	} else {
		baseLogger.Warn("notification token missing, settlement notices disabled")
	}

	authService := authsvc.NewService(store, cfg.Auth, baseLogger.Named("svc.auth"))
	reportingService := reportingsvc.NewService(store, store, store, store, reportCache, cfg.Redis.TTL, baseLogger.Named("svc.reporting"))
	milkService := milksvc.NewService(store, reportingService, baseLogger.Named("svc.milk"))
	purchasingService := purchasingsvc.NewService(store, baseLogger.Named("svc.purchasing"))

	engine := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Milk:     handlers.NewMilkHandler(milkService, baseLogger.Named("handlers.milk")),
		Customer: handlers.NewCustomerHandler(store, baseLogger.Named("handlers.customer")),
		Report:   handlers.NewReportHandler(reportingService, store, exporter, notifier, baseLogger.Named("handlers.report")),
		Purchase: handlers.NewPurchaseHandler(purchasingService, baseLogger.Named("handlers.purchase")),
		Ledger:   handlers.NewLedgerHandler(store, reportingService, baseLogger.Named("handlers.ledger")),
		Animal:   handlers.NewAnimalHandler(store, baseLogger.Named("handlers.animal")),
		Employee: handlers.NewEmployeeHandler(store, baseLogger.Named("handlers.employee")),
		Note:     handlers.NewNoteHandler(store, baseLogger.Named("handlers.note")),
	}, authService, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingService, store, exporter, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
