// Package share issues share links and resolves the public capability URLs
// they grant.
package share

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/token"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/validation"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"go.uber.org/zap"
)

// tokenAttempts bounds retries when a freshly generated token collides.
const tokenAttempts = 3

type ShareService interface {
	// CreateTirShare issues an active link to one truck. The truck must exist.
	CreateTirShare(ctx context.Context, tirID string, expiry *time.Time) (*models.ShareLink, error)
	// CreateListShare issues an active link to the truck list.
	CreateListShare(ctx context.Context, expiry *time.Time) (*models.ShareLink, error)
	ListShareLinks(ctx context.Context, t models.ShareType) ([]models.ShareLink, error)
	// UpdateShareLink changes active and/or expiryDate; nothing else is mutable.
	UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error)
	DeleteShareLink(ctx context.Context, id string) error

	// ResolveTir returns the dossier a tir link grants and counts the access.
	ResolveTir(ctx context.Context, tok string) (*models.TirDetail, error)
	// ResolveList returns the reduced truck list a list link grants and
	// counts the access.
	ResolveList(ctx context.Context, tok string) ([]models.PublicTir, error)
}

type shareService struct {
	store repositories.Store
	now   func() time.Time
}

var _ ShareService = (*shareService)(nil)

func NewShareService(store repositories.Store) ShareService {
	return &shareService{store: store, now: time.Now}
}

func (s *shareService) CreateTirShare(ctx context.Context, tirID string, expiry *time.Time) (*models.ShareLink, error) {
	t, err := s.store.GetTir(ctx, tirID)
	if err != nil {
		return nil, fmt.Errorf("get tir: %w", err)
	}
	if t == nil {
		return nil, xerr.ErrTirNotFound
	}
	return s.create(ctx, models.ShareTypeTir, tirID, expiry)
}

func (s *shareService) CreateListShare(ctx context.Context, expiry *time.Time) (*models.ShareLink, error) {
	return s.create(ctx, models.ShareTypeList, "", expiry)
}

func (s *shareService) create(ctx context.Context, typ models.ShareType, tirID string, expiry *time.Time) (*models.ShareLink, error) {
	for attempt := 1; ; attempt++ {
		tok, err := token.New()
		if err != nil {
			return nil, fmt.Errorf("generate share token: %w", err)
		}
		in := &models.InsertShareLink{
			Type:       typ,
			TirID:      tirID,
			Token:      tok,
			Active:     true,
			ExpiryDate: expiry,
		}
		if err := validation.Struct(in, xerr.ErrInvalidShareLink); err != nil {
			return nil, err
		}
		link, err := s.store.CreateShareLink(ctx, in)
		if errors.Is(err, repositories.ErrDuplicateToken) && attempt < tokenAttempts {
			logger.Warn("Share token collision, regenerating", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create share link: %w", err)
		}
		logger.Info("Share link created",
			zap.String("shareLinkID", link.ID),
			zap.String("type", string(typ)),
			zap.String("tirID", tirID),
		)
		return link, nil
	}
}

func (s *shareService) ListShareLinks(ctx context.Context, t models.ShareType) ([]models.ShareLink, error) {
	if !t.Valid() {
		return nil, xerr.ErrInvalidShareType
	}
	links, err := s.store.ListShareLinksByType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}
	return links, nil
}

func (s *shareService) UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error) {
	link, err := s.store.UpdateShareLink(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update share link: %w", err)
	}
	if link == nil {
		return nil, xerr.ErrShareLinkNotFound
	}
	return link, nil
}

func (s *shareService) DeleteShareLink(ctx context.Context, id string) error {
	ok, err := s.store.DeleteShareLink(ctx, id)
	if err != nil {
		return fmt.Errorf("delete share link: %w", err)
	}
	if !ok {
		return xerr.ErrShareLinkNotFound
	}
	return nil
}
