package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gmi-lojistik/tir-takip/cmd/server"
	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title GMI TIR Takip API
// @version 1.0
// @description Truck, document and share link management for the GMI logistics desk.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env is optional; real environment variables win
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.InitLogger(cfg.Log.OutputPath, cfg.Log.ErrorPath, cfg.Log.Level)
	defer logger.Sync()
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("Failed to load .env file", zap.Error(envErr))
	}

	logger.Info("Starting tir-takip...",
		zap.String("database", cfg.Database.Driver),
		zap.String("storage", cfg.Storage.Type),
	)

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("Failed to start application", zap.Error(err))
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	srv.Run(context.Background(), stopChan)

	logger.Info("tir-takip exited.")
}
