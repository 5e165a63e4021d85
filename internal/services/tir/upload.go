package tir

import (
	"context"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/metrics"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/storage"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/token"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/validation"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"go.uber.org/zap"
)

// UploadFile is a buffered multipart file.
type UploadFile struct {
	Data        []byte
	FileName    string
	ContentType string
	FileType    models.FileType
}

func (s *tirService) UploadDocument(ctx context.Context, tirID string, file *UploadFile) (*models.Document, error) {
	t, err := s.store.GetTir(ctx, tirID)
	if err != nil {
		return nil, fmt.Errorf("get tir: %w", err)
	}
	if t == nil {
		return nil, xerr.ErrTirNotFound
	}

	suffix, err := token.New()
	if err != nil {
		return nil, fmt.Errorf("generate public id: %w", err)
	}
	res, err := s.blobs.Upload(ctx, storage.UploadInput{
		Data:        file.Data,
		Folder:      s.folder,
		PublicID:    tirID + "_" + suffix,
		FileName:    file.FileName,
		ContentType: file.ContentType,
	})
	if err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues(metrics.UploadBlobFailed).Inc()
		logger.Error("Blob upload failed", zap.String("tirID", tirID), zap.String("fileName", file.FileName), zap.Error(err))
		return nil, &xerr.UploadError{Err: err}
	}

	size := int64(len(file.Data))
	in := &models.InsertDocument{
		TirID:              tirID,
		FileName:           file.FileName,
		FileType:           file.FileType,
		CloudinaryURL:      res.URL,
		CloudinaryPublicID: res.PublicID,
		FileSize:           &size,
		MimeType:           file.ContentType,
	}
	if err := validation.Struct(in, xerr.ErrInvalidDocument); err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues(metrics.UploadRejected).Inc()
		s.compensate(ctx, res.PublicID)
		return nil, err
	}

	d, err := s.CreateDocument(ctx, in)
	if err != nil {
		metrics.DocumentUploadsTotal.WithLabelValues(metrics.UploadStoreFailed).Inc()
		s.compensate(ctx, res.PublicID)
		return nil, err
	}
	metrics.DocumentUploadsTotal.WithLabelValues(metrics.UploadOK).Inc()
	logger.Info("Document uploaded",
		zap.String("tirID", tirID),
		zap.String("documentID", d.ID),
		zap.String("fileType", string(d.FileType)),
		zap.Int64("size", size),
	)
	return d, nil
}

// compensate removes a blob whose metadata row could not be written. It runs
// even if the client has gone away.
func (s *tirService) compensate(ctx context.Context, handle string) {
	s.deleteBlob(context.WithoutCancel(ctx), handle)
}
