package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"trading-journal/internal/journal/config"
	delivery "trading-journal/internal/journal/delivery/http"
	"trading-journal/internal/journal/delivery/watcher"
	_ "trading-journal/internal/journal/docs"
	"trading-journal/internal/journal/repository"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/common"
	"trading-journal/pkg/localstore"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/postgres"
	"trading-journal/pkg/redis"
	"trading-journal/pkg/telegram"
	"trading-journal/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trading journal service",
	Run:   runServe,
}

// journalStore is the remote store holding both the trade log and the portfolio.
type journalStore interface {
	service.TradeStore
	service.PortfolioStore
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Trading Journal Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("store", cfg.Store.Backend),
		logger.StringField("pending", cfg.Pending.Driver))

	// Remote store
	var store journalStore
	switch cfg.Store.Backend {
	case "postgres":
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
		store = repository.NewPostgresStoreRepository(db.DB)
	case "spreadsheet":
		store = repository.NewSpreadsheetRepository(cfg.Spreadsheet, appLogger)
	default:
		appLogger.Fatal("Unknown store backend", logger.StringField("backend", cfg.Store.Backend))
	}

	// Local pending storage
	var kv repository.KeyValueStore
	switch cfg.Pending.Driver {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		kv = repository.NewRedisKeyValueStore(redisClient.Client, cfg.App.Name+":")
	case "file":
		kv, err = localstore.Open(localstore.Config{Path: cfg.Pending.Path, MaxBytes: cfg.Pending.MaxBytes})
		if err != nil {
			appLogger.Fatal("Failed to open local pending store", logger.ErrorField(err))
		}
	default:
		appLogger.Fatal("Unknown pending driver", logger.StringField("driver", cfg.Pending.Driver))
	}
	tradeQueue := repository.NewPendingQueueRepository(kv, common.StorageKeyPendingTrades, common.PendingIDPrefixTrade, time.Now)
	portfolioQueue := repository.NewPendingQueueRepository(kv, common.StorageKeyPendingPortfolio, common.PendingIDPrefixPortfolio, time.Now)

	// Notifications
	notifiers := service.MultiNotifier{service.NewLogNotifier(appLogger)}
	var telegramClient telegram.Notifier
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram notifier", logger.ErrorField(err))
		} else {
			notifiers = append(notifiers, service.NewTelegramNotifier(telegramClient, appLogger))
		}
	}

	probeURL := cfg.Spreadsheet.ConnectivityProbeURL
	if probeURL == "" {
		probeURL = cfg.Spreadsheet.BaseURL
	}
	conn := repository.NewHTTPConnectivityProbe(probeURL, cfg.Spreadsheet.Timeout, appLogger)

	// Services
	syncSvc := service.NewSyncService(store, tradeQueue, conn, notifiers, appLogger, service.SyncOptions{
		Timeout:        cfg.Spreadsheet.Timeout,
		ReconnectDelay: cfg.Sync.ReconnectDelay,
	})
	portfolioSvc := service.NewPortfolioService(store, portfolioQueue, conn, notifiers, appLogger, service.PortfolioOptions{
		SmartSyncThreshold: float64(cfg.Portfolio.SmartSyncThreshold),
		Timeout:            cfg.Spreadsheet.Timeout,
	})
	journalSvc := service.NewJournalService(syncSvc, portfolioSvc, service.NewPositionReconciler(appLogger), appLogger)
	metricsSvc := service.NewMetricsService(appLogger, time.Now)

	if err := portfolioSvc.Load(ctx); err != nil {
		appLogger.Error("Failed to load portfolio", logger.ErrorField(err))
	}
	if err := syncSvc.Bootstrap(ctx); err != nil {
		appLogger.Error("Failed to bootstrap transaction log", logger.ErrorField(err))
	}

	// Background workers
	connWatcher := watcher.NewConnectivityWatcher(conn, syncSvc, portfolioSvc, appLogger, cfg.Sync.CheckInterval, conn.IsOnline(ctx))
	retryScheduler, err := watcher.NewRetryScheduler(cfg.Sync.RetryCron, cfg.Sync.RetryTimeout, conn, syncSvc, portfolioSvc, appLogger)
	if err != nil {
		appLogger.Fatal("Invalid retry schedule", logger.ErrorField(err))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	utils.GoSafe(func() {
		defer wg.Done()
		connWatcher.Start(ctx)
	})
	utils.GoSafe(func() {
		defer wg.Done()
		retryScheduler.Start(ctx)
	})

	if telegramClient != nil && cfg.Telegram.ReportCron != "" {
		reporter, err := watcher.NewPortfolioReporter(cfg.Telegram.ReportCron, portfolioSvc, journalSvc, telegramClient, appLogger)
		if err != nil {
			appLogger.Fatal("Invalid report schedule", logger.ErrorField(err))
		}
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			reporter.Start(ctx)
		})
	}

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	e.GET("/swagger/*", swagger.WrapHandler)

	apiV1 := e.Group("/api/v1")
	delivery.NewTradeHandler(journalSvc, appLogger).RegisterRoutes(apiV1.Group("/trades"))
	delivery.NewPositionHandler(journalSvc, appLogger).RegisterRoutes(apiV1.Group("/positions"))
	delivery.NewSyncHandler(syncSvc, portfolioSvc, appLogger).RegisterRoutes(apiV1.Group("/sync"))
	delivery.NewPortfolioHandler(portfolioSvc, syncSvc, appLogger).RegisterRoutes(apiV1.Group("/portfolio"))
	delivery.NewMetricsHandler(metricsSvc, journalSvc, appLogger).RegisterRoutes(apiV1.Group("/metrics"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	wg.Wait()

	appLogger.Info("Server exiting")
}

// @title Trading Journal API
// @version 1.0
// @description IDX trading journal: trades, positions, portfolio, metrics and offline sync.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "journal-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-journal.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing journal-service CLI: %s\n", err)
		os.Exit(1)
	}
}
