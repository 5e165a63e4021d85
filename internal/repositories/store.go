package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
)

// ErrDuplicateToken is returned by CreateShareLink when the token is taken.
var ErrDuplicateToken = errors.New("share link token already exists")

// Store is the metadata store. Lookups return (nil, nil) when the record does
// not exist; errors are reserved for backend failures.
type Store interface {
	TirStore
	DocumentStore
	ShareLinkStore

	// Name identifies the backend in logs and health output.
	Name() string
}

type TirStore interface {
	GetTir(ctx context.Context, id string) (*models.Tir, error)
	// ListTirs returns every truck, most recently updated first.
	ListTirs(ctx context.Context) ([]models.Tir, error)
	CreateTir(ctx context.Context, in *models.InsertTir) (*models.Tir, error)
	// UpdateTir merges patch and sets lastUpdated to now. An empty patch only
	// bumps lastUpdated.
	UpdateTir(ctx context.Context, id string, patch *models.TirPatch) (*models.Tir, error)
	// DeleteTir removes the truck, its documents and its tir share links.
	DeleteTir(ctx context.Context, id string) (bool, error)
}

type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	// ListDocumentsByTir returns the truck's documents, newest upload first.
	ListDocumentsByTir(ctx context.Context, tirID string) ([]models.Document, error)
	GroupDocumentsByType(ctx context.Context, tirID string) (models.DocumentsByType, error)
	CountDocumentsByTir(ctx context.Context, tirID string) (int64, error)
	CreateDocument(ctx context.Context, in *models.InsertDocument) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) (bool, error)
	DeleteDocumentsByTir(ctx context.Context, tirID string) (int64, error)
}

type ShareLinkStore interface {
	GetShareLink(ctx context.Context, id string) (*models.ShareLink, error)
	GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error)
	ListShareLinksByType(ctx context.Context, t models.ShareType) ([]models.ShareLink, error)
	ListShareLinksByTir(ctx context.Context, tirID string) ([]models.ShareLink, error)
	// CreateShareLink assigns id and createdAt and starts accessCount at 0.
	CreateShareLink(ctx context.Context, in *models.InsertShareLink) (*models.ShareLink, error)
	UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error)
	DeleteShareLink(ctx context.Context, id string) (bool, error)
	// RecordAccess sets lastAccessed to now and increments accessCount.
	// Unknown tokens are ignored.
	RecordAccess(ctx context.Context, token string) error
}

// now is the store clock. Millisecond precision matches what MongoDB keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
