package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrNoDatabaseURI is returned when the mongo driver is selected without a uri.
var ErrNoDatabaseURI = errors.New("database uri is not set")

// InitMongo connects and pings the server within cfg.ConnectTimeout.
func InitMongo(ctx context.Context, cfg *config.DatabaseConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, ErrNoDatabaseURI
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.Name))
	return client, nil
}

func CloseMongo(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Error closing MongoDB connection", zap.Error(err))
		return
	}
	logger.Info("MongoDB connection closed.")
}
