package share

import (
	"context"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/metrics"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"go.uber.org/zap"
)

func (s *shareService) ResolveTir(ctx context.Context, tok string) (*models.TirDetail, error) {
	link, err := s.authorize(ctx, tok, models.ShareTypeTir)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTir(ctx, link.TirID)
	if err != nil {
		return nil, s.fail(models.ShareTypeTir, fmt.Errorf("get tir: %w", err))
	}
	if t == nil {
		metrics.ShareAccessTotal.WithLabelValues(string(models.ShareTypeTir), metrics.OutcomeNotFound).Inc()
		return nil, xerr.ErrTirNotFound
	}
	docs, err := s.store.ListDocumentsByTir(ctx, t.ID)
	if err != nil {
		return nil, s.fail(models.ShareTypeTir, fmt.Errorf("list documents: %w", err))
	}
	detail := &models.TirDetail{
		Tir:             *t,
		Documents:       docs,
		DocumentCount:   len(docs),
		DocumentsByType: models.GroupByType(docs),
	}
	s.recordAccess(ctx, link)
	return detail, nil
}

func (s *shareService) ResolveList(ctx context.Context, tok string) ([]models.PublicTir, error) {
	link, err := s.authorize(ctx, tok, models.ShareTypeList)
	if err != nil {
		return nil, err
	}
	tirs, err := s.store.ListTirs(ctx)
	if err != nil {
		return nil, s.fail(models.ShareTypeList, fmt.Errorf("list tirs: %w", err))
	}
	out := make([]models.PublicTir, 0, len(tirs))
	for i := range tirs {
		out = append(out, tirs[i].Public())
	}
	s.recordAccess(ctx, link)
	return out, nil
}

// authorize checks, in order: existence, active flag, type and expiry.
// Absent, inactive and mismatched links are indistinguishable to the caller.
func (s *shareService) authorize(ctx context.Context, tok string, want models.ShareType) (*models.ShareLink, error) {
	link, err := s.store.GetShareLinkByToken(ctx, tok)
	if err != nil {
		return nil, s.fail(want, fmt.Errorf("get share link: %w", err))
	}
	if link == nil || !link.Active || link.Type != want {
		metrics.ShareAccessTotal.WithLabelValues(string(want), metrics.OutcomeInvalid).Inc()
		return nil, xerr.ErrShareLinkInvalid
	}
	if link.Expired(s.now()) {
		metrics.ShareAccessTotal.WithLabelValues(string(want), metrics.OutcomeExpired).Inc()
		return nil, xerr.ErrShareLinkExpired
	}
	return link, nil
}

// recordAccess runs once the payload is ready. The reader already has a
// valid link, so a counter failure is logged rather than returned.
func (s *shareService) recordAccess(ctx context.Context, link *models.ShareLink) {
	metrics.ShareAccessTotal.WithLabelValues(string(link.Type), metrics.OutcomeOK).Inc()
	if err := s.store.RecordAccess(ctx, link.Token); err != nil {
		logger.Error("Failed to record share access", zap.String("shareLinkID", link.ID), zap.Error(err))
	}
}

func (s *shareService) fail(t models.ShareType, err error) error {
	metrics.ShareAccessTotal.WithLabelValues(string(t), metrics.OutcomeError).Inc()
	return err
}
