package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/config"
	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/device"
	"github.com/nivapos/catalog-service/internal/pkg/broker"
	"github.com/nivapos/catalog-service/internal/pkg/cache"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
	"github.com/nivapos/catalog-service/internal/pkg/postgres"
	"github.com/nivapos/catalog-service/internal/pkg/search"

	cashH "github.com/nivapos/catalog-service/internal/cashsession/handler"
	cashRepoPkg "github.com/nivapos/catalog-service/internal/cashsession/repository"
	cashUCPkg "github.com/nivapos/catalog-service/internal/cashsession/usecase"

	catH "github.com/nivapos/catalog-service/internal/category/handler"
	catRepoPkg "github.com/nivapos/catalog-service/internal/category/repository"
	catUCPkg "github.com/nivapos/catalog-service/internal/category/usecase"

	custH "github.com/nivapos/catalog-service/internal/customer/handler"
	custRepoPkg "github.com/nivapos/catalog-service/internal/customer/repository"
	custUCPkg "github.com/nivapos/catalog-service/internal/customer/usecase"

	invH "github.com/nivapos/catalog-service/internal/inventory/handler"
	invListenerPkg "github.com/nivapos/catalog-service/internal/inventory/listener"
	invRepoPkg "github.com/nivapos/catalog-service/internal/inventory/repository"
	invUCPkg "github.com/nivapos/catalog-service/internal/inventory/usecase"

	prodH "github.com/nivapos/catalog-service/internal/product/handler"
	prodRepoPkg "github.com/nivapos/catalog-service/internal/product/repository"
	prodUCPkg "github.com/nivapos/catalog-service/internal/product/usecase"

	rcptH "github.com/nivapos/catalog-service/internal/receipt/handler"
	rcptRepoPkg "github.com/nivapos/catalog-service/internal/receipt/repository"
	rcptUCPkg "github.com/nivapos/catalog-service/internal/receipt/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		// The service stays up without ES; search falls back to the database.
		appLogger.Warn("could not connect to Elasticsearch", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	custRepo := custRepoPkg.NewPGRepository(db)
	cashRepo := cashRepoPkg.NewPGRepository(db)
	rcptRepo := rcptRepoPkg.NewPGRepository(db)

	hub := device.NewHub(appLogger)

	catUC := catUCPkg.NewCategoryUseCase(catRepo, redisClient, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	custUC := custUCPkg.NewCustomerUseCase(custRepo, appLogger)
	cashUC := cashUCPkg.NewCashSessionUseCase(cashRepo, hub, appLogger)
	rcptUC := rcptUCPkg.NewReceiptUseCase(rcptRepo, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)
	go invListener.Start(ctx)

	mux := http.NewServeMux()
	catH.NewCategoryHandler(catUC, appLogger).Register(mux)
	prodH.NewProductHandler(prodUC, appLogger).Register(mux)
	invH.NewInventoryHandler(invUC, appLogger).Register(mux)
	custH.NewCustomerHandler(custUC, appLogger).Register(mux)
	cashH.NewCashSessionHandler(cashUC, appLogger).Register(mux)
	rcptH.NewReceiptHandler(rcptUC, appLogger).Register(mux)
	hub.Register(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      auth.Middleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
