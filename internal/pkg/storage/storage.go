package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gmi-lojistik/tir-takip/internal/config"
)

// BlobStore holds the bytes of uploaded documents. Handles returned by Upload
// are opaque to callers and are the only input Delete accepts.
type BlobStore interface {
	// Upload stores in.Data and returns its public URL and handle.
	Upload(ctx context.Context, in UploadInput) (UploadResult, error)
	// Delete removes the object behind handle.
	Delete(ctx context.Context, handle string) error
}

type UploadInput struct {
	Data        []byte
	Folder      string
	PublicID    string // requested name inside Folder, without extension
	FileName    string // client file name; its extension is kept by object stores
	ContentType string
}

type UploadResult struct {
	URL      string // public retrieval URL
	PublicID string // handle for Delete
}

// NewBlobStore builds the provider selected by storage.type.
func NewBlobStore(cfg *config.Config) (BlobStore, error) {
	switch cfg.Storage.Type {
	case "cloudinary", "":
		return NewCloudinaryBlobStore(&cfg.Cloudinary)
	case "minio":
		return NewMinIOBlobStore(&cfg.MinIO)
	case "aliyun_oss":
		return NewAliyunOSSBlobStore(&cfg.AliyunOSS)
	case "s3":
		return NewS3BlobStore(&cfg.S3)
	case "memory":
		return NewMemoryBlobStore(), nil
	default:
		return nil, fmt.Errorf("invalid storage.type %q", cfg.Storage.Type)
	}
}

// objectKey is the key used by the object-store providers:
// <folder>/<publicID><ext>.
func objectKey(folder, publicID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return path.Join(folder, publicID+ext)
}

func withScheme(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return strings.TrimSuffix(endpoint, "/")
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
