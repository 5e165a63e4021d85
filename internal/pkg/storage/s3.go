package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"go.uber.org/zap"
)

type S3BlobStore struct {
	client *s3.Client
	cfg    *config.S3Config
}

// NewS3BlobStore uses static credentials when both keys are set, otherwise the
// default AWS chain (environment, shared config, IAM role).
func NewS3BlobStore(cfg *config.S3Config) (*S3BlobStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Info("S3 client initialized", zap.String("bucket", cfg.Bucket), zap.String("region", cfg.Region))
	return &S3BlobStore{client: client, cfg: cfg}, nil
}

func (s *S3BlobStore) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	key := objectKey(in.Folder, in.PublicID, in.FileName)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(in.Data),
		ContentLength: aws.Int64(int64(len(in.Data))),
		ContentType:   aws.String(in.ContentType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("s3 put object: %w", err)
	}
	return UploadResult{URL: s.objectURL(key), PublicID: key}, nil
}

func (s *S3BlobStore) Delete(ctx context.Context, handle string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(handle),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

func (s *S3BlobStore) objectURL(key string) string {
	switch {
	case s.cfg.PublicURL != "":
		return fmt.Sprintf("%s/%s", withScheme(s.cfg.PublicURL, true), key)
	case s.cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", withScheme(s.cfg.Endpoint, true), s.cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}
