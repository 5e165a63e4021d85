package repositories

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/cache"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/metrics"
	"go.uber.org/zap"
)

const negativeCacheTTL = time.Minute

// shareLinkEntry is the cached form of a token lookup. A nil Link records
// that the token does not exist.
type shareLinkEntry struct {
	Link *models.ShareLink `json:"link"`
}

// CachedStore caches share link lookups by token in front of another Store.
// Every write that can change a link's state drops its token entry. The
// access counter is not refreshed on RecordAccess, so a cached link may lag
// on AccessCount and LastAccessed for up to the TTL. Cache failures are
// logged and fall through to the wrapped store.
type CachedStore struct {
	Store
	cache cache.Cache
	ttl   time.Duration

	// gen counts invalidations. A lookup only fills the cache when no
	// invalidation ran since it read the wrapped store; mu orders that check
	// and the write against invalidate.
	mu  sync.RWMutex
	gen uint64
}

func NewCachedStore(next Store, c cache.Cache, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{Store: next, cache: c, ttl: ttl}
}

func (s *CachedStore) Name() string {
	return s.Store.Name() + "+cache"
}

// entryTTL spreads expirations so entries written together do not expire together.
func (s *CachedStore) entryTTL() time.Duration {
	return s.ttl + time.Duration(rand.Int63n(int64(s.ttl/10)+1))
}

func (s *CachedStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	key := cache.ShareLinkTokenKey(token)

	var entry shareLinkEntry
	err := s.cache.Get(ctx, key, &entry)
	if err == nil {
		metrics.CacheHitsTotal.Inc()
		return entry.Link, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Error("GetShareLinkByToken: cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheMissesTotal.Inc()

	gen := s.generation()
	link, err := s.Store.GetShareLinkByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	ttl := s.entryTTL()
	if link == nil {
		ttl = negativeCacheTTL
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen != gen {
		// a write landed after our read; the result may already be stale
		return link, nil
	}
	if err := s.cache.Set(ctx, key, shareLinkEntry{Link: link}, ttl); err != nil {
		logger.Error("GetShareLinkByToken: cache write failed", zap.String("key", key), zap.Error(err))
	}
	return link, nil
}

func (s *CachedStore) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *CachedStore) invalidate(ctx context.Context, tokens ...string) {
	if len(tokens) == 0 {
		return
	}
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		keys = append(keys, cache.ShareLinkTokenKey(t))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		logger.Error("share link cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *CachedStore) CreateShareLink(ctx context.Context, in *models.InsertShareLink) (*models.ShareLink, error) {
	link, err := s.Store.CreateShareLink(ctx, in)
	if err != nil {
		return nil, err
	}
	// a negative entry may exist for this token
	s.invalidate(ctx, link.Token)
	return link, nil
}

func (s *CachedStore) UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error) {
	link, err := s.Store.UpdateShareLink(ctx, id, patch)
	if err != nil || link == nil {
		return link, err
	}
	s.invalidate(ctx, link.Token)
	return link, nil
}

func (s *CachedStore) DeleteShareLink(ctx context.Context, id string) (bool, error) {
	link, err := s.Store.GetShareLink(ctx, id)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, nil
	}
	ok, err := s.Store.DeleteShareLink(ctx, id)
	if err != nil {
		return false, err
	}
	s.invalidate(ctx, link.Token)
	return ok, nil
}

func (s *CachedStore) DeleteTir(ctx context.Context, id string) (bool, error) {
	links, err := s.Store.ListShareLinksByTir(ctx, id)
	if err != nil {
		return false, err
	}
	ok, err := s.Store.DeleteTir(ctx, id)
	if err != nil {
		return false, err
	}
	tokens := make([]string, 0, len(links))
	for _, l := range links {
		tokens = append(tokens, l.Token)
	}
	s.invalidate(ctx, tokens...)
	return ok, nil
}
