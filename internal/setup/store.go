package setup

import (
	"context"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"go.uber.org/zap"
)

// OpenStore connects the metadata store selected by database.driver and
// prepares its schema. The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (repositories.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		return repositories.NewMemoryStore(), func() {}, nil

	case "mongo":
		client, err := InitMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := repositories.NewMongoStore(client.Database(cfg.Name))
		idxCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		if err := store.EnsureIndexes(idxCtx); err != nil {
			CloseMongo(context.Background(), client)
			return nil, nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return store, func() { CloseMongo(context.Background(), client) }, nil

	case "mysql", "postgres", "sqlite":
		db, err := InitGorm(cfg)
		if err != nil {
			return nil, nil, err
		}
		store := repositories.NewGormStore(db)
		if err := store.AutoMigrate(); err != nil {
			CloseGorm(db)
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("Database tables migrated successfully!")
		return store, func() { CloseGorm(db) }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database.driver %q", cfg.Driver)
	}
}

// Bootstrap resolves deferred with the configured store, or with an in-process
// store when the backend cannot be reached. It blocks until resolved.
func Bootstrap(ctx context.Context, cfg *config.DatabaseConfig, deferred *repositories.DeferredStore) func() {
	store, closeFn, err := OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Metadata store unavailable, falling back to in-memory store",
			zap.String("driver", cfg.Driver),
			zap.Error(err),
		)
		store, closeFn = repositories.NewMemoryStore(), func() {}
	}
	deferred.Resolve(store)
	logger.Info("Metadata store ready", zap.String("store", store.Name()))
	return closeFn
}
