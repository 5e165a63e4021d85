package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinIOBlobStore struct {
	client *minio.Client
	cfg    *config.MinIOConfig
}

func NewMinIOBlobStore(cfg *config.MinIOConfig) (*MinIOBlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Error("Failed to initialize MinIO client", zap.Error(err))
		return nil, fmt.Errorf("init minio: %w", err)
	}
	logger.Info("MinIO client initialized", zap.String("endpoint", cfg.Endpoint))
	return &MinIOBlobStore{client: client, cfg: cfg}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (s *MinIOBlobStore) EnsureBucket(ctx context.Context) error {
	err := s.client.MakeBucket(ctx, s.cfg.BucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := s.client.BucketExists(ctx, s.cfg.BucketName)
		if errExists == nil && exists {
			return nil
		}
		return fmt.Errorf("create minio bucket: %w", err)
	}
	logger.Info("MinIO bucket created", zap.String("bucket", s.cfg.BucketName))
	return nil
}

func (s *MinIOBlobStore) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	key := objectKey(in.Folder, in.PublicID, in.FileName)
	_, err := s.client.PutObject(ctx, s.cfg.BucketName, key, bytes.NewReader(in.Data), int64(len(in.Data)), minio.PutObjectOptions{
		ContentType: in.ContentType,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("minio put object: %w", err)
	}
	return UploadResult{URL: s.objectURL(key), PublicID: key}, nil
}

func (s *MinIOBlobStore) Delete(ctx context.Context, handle string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.BucketName, handle, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio remove object: %w", err)
	}
	return nil
}

// objectURL is <endpoint>/<bucket>/<key>; PublicURL replaces the endpoint
// when the bucket is served through a proxy or CDN.
func (s *MinIOBlobStore) objectURL(key string) string {
	base := s.cfg.PublicURL
	if base == "" {
		base = s.cfg.Endpoint
	}
	return fmt.Sprintf("%s/%s/%s", withScheme(base, s.cfg.UseSSL), s.cfg.BucketName, key)
}
