package repositories

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/cache"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts token lookups that reach the backing store.
type countingStore struct {
	Store
	lookups atomic.Int64
}

func (c *countingStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	c.lookups.Add(1)
	return c.Store.GetShareLinkByToken(ctx, token)
}

func newRedisBackedCache(t *testing.T) cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisCache(client)
}

func TestCachedStore_LRU(t *testing.T) {
	runStoreSuite(t, func(*testing.T) Store {
		return NewCachedStore(NewMemoryStore(), cache.NewLRUCache(64, time.Minute), time.Minute)
	})
}

func TestCachedStore_Redis(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		return NewCachedStore(NewMemoryStore(), newRedisBackedCache(t), time.Minute)
	})
}

func TestCachedStore_ServesRepeatedLookupsFromCache(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{Store: NewMemoryStore()}
	s := NewCachedStore(backing, cache.NewLRUCache(64, time.Minute), time.Minute)

	link, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('a'), Active: true})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := s.GetShareLinkByToken(ctx, link.Token)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NoError(t, s.RecordAccess(ctx, link.Token))
	}
	assert.Equal(t, int64(1), backing.lookups.Load(), "access counting keeps the entry")

	for i := 0; i < 3; i++ {
		got, err := s.GetShareLinkByToken(ctx, shareToken('n'))
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Equal(t, int64(2), backing.lookups.Load(), "negative lookups are cached too")
}

func TestCachedStore_MutationsInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewCachedStore(NewMemoryStore(), newRedisBackedCache(t), time.Minute)

	// negative entry first, then creation must replace it
	missing, err := s.GetShareLinkByToken(ctx, shareToken('a'))
	require.NoError(t, err)
	assert.Nil(t, missing)

	tir, err := s.CreateTir(ctx, &models.InsertTir{Phone: "1"})
	require.NoError(t, err)
	link, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeTir, TirID: tir.ID, Token: shareToken('a'), Active: true})
	require.NoError(t, err)

	got, err := s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Active)

	inactive := false
	_, err = s.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{Active: &inactive})
	require.NoError(t, err)
	got, err = s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, s.RecordAccess(ctx, link.Token))
	links, err := s.ListShareLinksByTir(ctx, tir.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(1), links[0].AccessCount, "listings read the backing store")

	ok, err := s.DeleteTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.Nil(t, got, "cascaded link must not be served from cache")

	list, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('b'), Active: true})
	require.NoError(t, err)
	_, err = s.GetShareLinkByToken(ctx, list.Token)
	require.NoError(t, err)
	ok, err = s.DeleteShareLink(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = s.GetShareLinkByToken(ctx, list.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachedStore_Name(t *testing.T) {
	s := NewCachedStore(NewMemoryStore(), cache.NewLRUCache(1, time.Minute), 0)
	assert.Equal(t, "memory+cache", s.Name())
}

// racingStore runs onRead after the backing store answered a token lookup
// and before the caller gets the result.
type racingStore struct {
	Store
	onRead func()
}

func (r *racingStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	link, err := r.Store.GetShareLinkByToken(ctx, token)
	if r.onRead != nil {
		hook := r.onRead
		r.onRead = nil
		hook()
	}
	return link, err
}

func TestCachedStore_WriteDuringLookupIsNotCached(t *testing.T) {
	ctx := context.Background()
	backing := &racingStore{Store: NewMemoryStore()}
	s := NewCachedStore(backing, cache.NewLRUCache(64, time.Minute), time.Minute)

	link, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('d'), Active: true})
	require.NoError(t, err)

	inactive := false
	backing.onRead = func() {
		_, err := s.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{Active: &inactive})
		require.NoError(t, err)
	}
	got, err := s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Active, "the racing lookup returns what it read")

	got, err = s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active, "deactivated link served as active from cache")
}

func TestCachedStore_DeleteDuringLookupIsNotCached(t *testing.T) {
	ctx := context.Background()
	backing := &racingStore{Store: NewMemoryStore()}
	s := NewCachedStore(backing, newRedisBackedCache(t), time.Minute)

	link, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('e'), Active: true})
	require.NoError(t, err)

	backing.onRead = func() {
		ok, err := s.DeleteShareLink(ctx, link.ID)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, err = s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)

	got, err := s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	assert.Nil(t, got, "deleted link served from cache")
}
