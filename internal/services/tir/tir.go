// Package tir implements truck and document operations, including the upload
// pipeline that keeps the blob store and the metadata store consistent.
package tir

import (
	"context"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/metrics"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/storage"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/validation"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"go.uber.org/zap"
)

// DefaultFolder is the blob folder documents are uploaded to.
const DefaultFolder = "gmi-tir-documents"

type TirService interface {
	// ListTirs returns every truck with its document count.
	ListTirs(ctx context.Context) ([]models.TirSummary, error)
	// GetTir returns the full dossier or xerr.ErrTirNotFound.
	GetTir(ctx context.Context, id string) (*models.TirDetail, error)
	CreateTir(ctx context.Context, in *models.InsertTir) (*models.Tir, error)
	UpdateTir(ctx context.Context, id string, patch *models.TirPatch) (*models.Tir, error)
	// DeleteTir removes the truck with its documents, their blobs and its
	// share links.
	DeleteTir(ctx context.Context, id string) error

	// UploadDocument stores file in the blob store and records it.
	UploadDocument(ctx context.Context, tirID string, file *UploadFile) (*models.Document, error)
	// CreateDocument records an already uploaded blob and bumps the truck.
	CreateDocument(ctx context.Context, in *models.InsertDocument) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

type tirService struct {
	store  repositories.Store
	blobs  storage.BlobStore
	folder string
}

var _ TirService = (*tirService)(nil)

func NewTirService(store repositories.Store, blobs storage.BlobStore, folder string) TirService {
	if folder == "" {
		folder = DefaultFolder
	}
	return &tirService{store: store, blobs: blobs, folder: folder}
}

func (s *tirService) ListTirs(ctx context.Context) ([]models.TirSummary, error) {
	tirs, err := s.store.ListTirs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tirs: %w", err)
	}
	out := make([]models.TirSummary, 0, len(tirs))
	for _, t := range tirs {
		n, err := s.store.CountDocumentsByTir(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("count documents of tir %s: %w", t.ID, err)
		}
		out = append(out, models.TirSummary{Tir: t, DocumentCount: n})
	}
	return out, nil
}

func (s *tirService) GetTir(ctx context.Context, id string) (*models.TirDetail, error) {
	t, err := s.store.GetTir(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tir: %w", err)
	}
	if t == nil {
		return nil, xerr.ErrTirNotFound
	}
	docs, err := s.store.ListDocumentsByTir(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	grouped, err := s.store.GroupDocumentsByType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("group documents: %w", err)
	}
	return &models.TirDetail{
		Tir:             *t,
		Documents:       docs,
		DocumentCount:   len(docs),
		DocumentsByType: grouped,
	}, nil
}

func (s *tirService) CreateTir(ctx context.Context, in *models.InsertTir) (*models.Tir, error) {
	if err := validation.Struct(in, xerr.ErrInvalidTir); err != nil {
		return nil, err
	}
	t, err := s.store.CreateTir(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create tir: %w", err)
	}
	logger.Info("Tir created", zap.String("tirID", t.ID))
	return t, nil
}

func (s *tirService) UpdateTir(ctx context.Context, id string, patch *models.TirPatch) (*models.Tir, error) {
	if err := validation.Struct(patch, xerr.ErrInvalidTir); err != nil {
		return nil, err
	}
	t, err := s.store.UpdateTir(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update tir: %w", err)
	}
	if t == nil {
		return nil, xerr.ErrTirNotFound
	}
	return t, nil
}

func (s *tirService) DeleteTir(ctx context.Context, id string) error {
	t, err := s.store.GetTir(ctx, id)
	if err != nil {
		return fmt.Errorf("get tir: %w", err)
	}
	if t == nil {
		return xerr.ErrTirNotFound
	}
	docs, err := s.store.ListDocumentsByTir(ctx, id)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, d := range docs {
		s.deleteBlob(ctx, d.CloudinaryPublicID)
	}
	ok, err := s.store.DeleteTir(ctx, id)
	if err != nil {
		return fmt.Errorf("delete tir: %w", err)
	}
	if !ok {
		return xerr.ErrTirNotFound
	}
	logger.Info("Tir deleted", zap.String("tirID", id), zap.Int("documents", len(docs)))
	return nil
}

func (s *tirService) CreateDocument(ctx context.Context, in *models.InsertDocument) (*models.Document, error) {
	d, err := s.store.CreateDocument(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	s.touch(ctx, in.TirID)
	return d, nil
}

func (s *tirService) DeleteDocument(ctx context.Context, id string) error {
	d, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if d == nil {
		return xerr.ErrDocumentNotFound
	}
	s.deleteBlob(ctx, d.CloudinaryPublicID)
	ok, err := s.store.DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if !ok {
		return xerr.ErrDocumentNotFound
	}
	s.touch(ctx, d.TirID)
	return nil
}

// touch bumps the truck's lastUpdated. The document change is already
// persisted, so a failure here is only logged.
func (s *tirService) touch(ctx context.Context, tirID string) {
	if _, err := s.store.UpdateTir(ctx, tirID, &models.TirPatch{}); err != nil {
		logger.Error("Failed to bump tir lastUpdated", zap.String("tirID", tirID), zap.Error(err))
	}
}

// deleteBlob is best effort: a metadata row pointing at a missing blob is
// worse than an orphan blob, so failures never abort the caller.
func (s *tirService) deleteBlob(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	if err := s.blobs.Delete(ctx, handle); err != nil {
		metrics.BlobDeleteFailuresTotal.Inc()
		logger.Error("Failed to delete blob", zap.String("publicID", handle), zap.Error(err))
	}
}
