package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"go.uber.org/zap"
)

type AliyunOSSBlobStore struct {
	bucket *oss.Bucket
	cfg    *config.AliyunOSSConfig
}

func NewAliyunOSSBlobStore(cfg *config.AliyunOSSConfig) (*AliyunOSSBlobStore, error) {
	client, err := oss.New(withScheme(cfg.Endpoint, cfg.UseSSL), cfg.AccessKeyID, cfg.SecretAccessKey)
	if err != nil {
		logger.Error("Failed to initialize Aliyun OSS client", zap.Error(err))
		return nil, fmt.Errorf("init aliyun oss: %w", err)
	}
	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("open oss bucket: %w", err)
	}
	logger.Info("Aliyun OSS client initialized", zap.String("endpoint", cfg.Endpoint))
	return &AliyunOSSBlobStore{bucket: bucket, cfg: cfg}, nil
}

// The OSS SDK has no context support; ctx is only checked before the call.
func (s *AliyunOSSBlobStore) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return UploadResult{}, err
	}
	key := objectKey(in.Folder, in.PublicID, in.FileName)
	if err := s.bucket.PutObject(key, bytes.NewReader(in.Data), oss.ContentType(in.ContentType)); err != nil {
		return UploadResult{}, fmt.Errorf("oss put object: %w", err)
	}
	return UploadResult{URL: s.objectURL(key), PublicID: key}, nil
}

func (s *AliyunOSSBlobStore) Delete(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(handle); err != nil {
		return fmt.Errorf("oss delete object: %w", err)
	}
	return nil
}

// objectURL is <scheme>://<bucket>.<endpoint>/<key>.
func (s *AliyunOSSBlobStore) objectURL(key string) string {
	scheme := "http://"
	if s.cfg.UseSSL {
		scheme = "https://"
	}
	endpoint := strings.TrimPrefix(s.cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	return fmt.Sprintf("%s%s.%s/%s", scheme, s.cfg.BucketName, endpoint, key)
}
