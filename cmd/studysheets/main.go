package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aidin1998/studysheets/api"
	"github.com/Aidin1998/studysheets/internal/config"
	"github.com/Aidin1998/studysheets/internal/database"
	"github.com/Aidin1998/studysheets/pkg/logger"
	"github.com/Aidin1998/studysheets/pkg/telemetry"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title			Study Sheets API
// @version		1.0.0
// @description	Search, create, update and delete study sheets and their keywords.
// @basePath		/
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	bootstrap, err := logger.NewLogger(os.Getenv(config.EnvPrefix+"_LOG_LEVEL"), false)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	cfg, err := config.Load(bootstrap, "./config.yaml", "./configs/config.yaml")
	if err != nil {
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	zapLogger, err := logger.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		bootstrap.Fatal("Failed to create logger", zap.Error(err))
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Tracing: cfg.Telemetry.Tracing,
		Metrics: cfg.Telemetry.Metrics,
	})
	if err != nil {
		zapLogger.Fatal("Failed to set up telemetry", zap.Error(err))
	}

	db, err := database.Open(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// DB pool metrics
	go database.CollectStats(ctx, db, cfg.Database.StatsInterval, zapLogger)

	apiServer := api.NewServer(zapLogger, db, cfg)

	go func() {
		if err := apiServer.Start(cfg.Addr()); err != nil {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shut down API server", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		zapLogger.Error("Failed to flush telemetry", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	zapLogger.Info("Server exited properly")
}
