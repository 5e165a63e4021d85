package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/storage"
	"go.uber.org/zap"
)

// InitBlobStore builds the configured blob store. A MinIO bucket is created
// when missing.
func InitBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	blobs, err := storage.NewBlobStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("init %s blob store: %w", cfg.Storage.Type, err)
	}

	if m, ok := blobs.(*storage.MinIOBlobStore); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.EnsureBucket(ctx); err != nil {
			return nil, err
		}
	}
	logger.Info("Blob store initialized",
		zap.String("type", cfg.Storage.Type),
		zap.String("folder", cfg.Storage.Folder),
	)
	return blobs, nil
}
