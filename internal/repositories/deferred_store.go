package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gmi-lojistik/tir-takip/internal/models"
)

// ErrStoreNotReady is returned when a request gives up waiting for bootstrap.
var ErrStoreNotReady = errors.New("metadata store is not ready")

// DeferredStore lets the HTTP server start before the metadata store is
// chosen. Every call blocks until Resolve has been called or ctx ends, so all
// requests observe the same backend.
type DeferredStore struct {
	ready chan struct{}
	once  sync.Once
	store Store
}

func NewDeferredStore() *DeferredStore {
	return &DeferredStore{ready: make(chan struct{})}
}

// Resolve installs s. Only the first call has an effect.
func (d *DeferredStore) Resolve(s Store) {
	d.once.Do(func() {
		d.store = s
		close(d.ready)
	})
}

// Ready reports whether Resolve has been called.
func (d *DeferredStore) Ready() bool {
	select {
	case <-d.ready:
		return true
	default:
		return false
	}
}

func (d *DeferredStore) Name() string {
	if !d.Ready() {
		return "pending"
	}
	return d.store.Name()
}

func (d *DeferredStore) wait(ctx context.Context) (Store, error) {
	select {
	case <-d.ready:
		return d.store, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrStoreNotReady, ctx.Err())
	}
}

func (d *DeferredStore) GetTir(ctx context.Context, id string) (*models.Tir, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetTir(ctx, id)
}

func (d *DeferredStore) ListTirs(ctx context.Context) ([]models.Tir, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListTirs(ctx)
}

func (d *DeferredStore) CreateTir(ctx context.Context, in *models.InsertTir) (*models.Tir, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.CreateTir(ctx, in)
}

func (d *DeferredStore) UpdateTir(ctx context.Context, id string, patch *models.TirPatch) (*models.Tir, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.UpdateTir(ctx, id, patch)
}

func (d *DeferredStore) DeleteTir(ctx context.Context, id string) (bool, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return false, err
	}
	return s.DeleteTir(ctx, id)
}

func (d *DeferredStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, id)
}

func (d *DeferredStore) ListDocumentsByTir(ctx context.Context, tirID string) ([]models.Document, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListDocumentsByTir(ctx, tirID)
}

func (d *DeferredStore) GroupDocumentsByType(ctx context.Context, tirID string) (models.DocumentsByType, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return models.DocumentsByType{}, err
	}
	return s.GroupDocumentsByType(ctx, tirID)
}

func (d *DeferredStore) CountDocumentsByTir(ctx context.Context, tirID string) (int64, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return 0, err
	}
	return s.CountDocumentsByTir(ctx, tirID)
}

func (d *DeferredStore) CreateDocument(ctx context.Context, in *models.InsertDocument) (*models.Document, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.CreateDocument(ctx, in)
}

func (d *DeferredStore) DeleteDocument(ctx context.Context, id string) (bool, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return false, err
	}
	return s.DeleteDocument(ctx, id)
}

func (d *DeferredStore) DeleteDocumentsByTir(ctx context.Context, tirID string) (int64, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return 0, err
	}
	return s.DeleteDocumentsByTir(ctx, tirID)
}

func (d *DeferredStore) GetShareLink(ctx context.Context, id string) (*models.ShareLink, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetShareLink(ctx, id)
}

func (d *DeferredStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetShareLinkByToken(ctx, token)
}

func (d *DeferredStore) ListShareLinksByType(ctx context.Context, t models.ShareType) ([]models.ShareLink, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListShareLinksByType(ctx, t)
}

func (d *DeferredStore) ListShareLinksByTir(ctx context.Context, tirID string) ([]models.ShareLink, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListShareLinksByTir(ctx, tirID)
}

func (d *DeferredStore) CreateShareLink(ctx context.Context, in *models.InsertShareLink) (*models.ShareLink, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.CreateShareLink(ctx, in)
}

func (d *DeferredStore) UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.UpdateShareLink(ctx, id, patch)
}

func (d *DeferredStore) DeleteShareLink(ctx context.Context, id string) (bool, error) {
	s, err := d.wait(ctx)
	if err != nil {
		return false, err
	}
	return s.DeleteShareLink(ctx, id)
}

func (d *DeferredStore) RecordAccess(ctx context.Context, token string) error {
	s, err := d.wait(ctx)
	if err != nil {
		return err
	}
	return s.RecordAccess(ctx, token)
}
