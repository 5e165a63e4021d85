package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"go.uber.org/zap"
)

type CloudinaryBlobStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryBlobStore never fails on missing credentials: uploads then fail
// at request time and surface as 500.
func NewCloudinaryBlobStore(cfg *config.CloudinaryConfig) (*CloudinaryBlobStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		logger.Warn("Cloudinary credentials are incomplete; document uploads will fail")
		return &CloudinaryBlobStore{}, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		logger.Error("Failed to initialize Cloudinary client", zap.Error(err))
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	logger.Info("Cloudinary client initialized", zap.String("cloud", cfg.CloudName))
	return &CloudinaryBlobStore{cld: cld}, nil
}

var errCloudinaryNotConfigured = errors.New("cloudinary is not configured")

func (s *CloudinaryBlobStore) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if s.cld == nil {
		return UploadResult{}, errCloudinaryNotConfigured
	}
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(in.Data), uploader.UploadParams{
		PublicID:     in.PublicID,
		Folder:       in.Folder,
		ResourceType: "auto",
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryBlobStore) Delete(ctx context.Context, handle string) error {
	if s.cld == nil {
		return errCloudinaryNotConfigured
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: handle})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return nil
}
