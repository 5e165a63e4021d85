package share

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/token"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collidingStore rejects the first n share link inserts as duplicates.
type collidingStore struct {
	*repositories.MemoryStore
	n     int
	calls int
}

func (c *collidingStore) CreateShareLink(ctx context.Context, in *models.InsertShareLink) (*models.ShareLink, error) {
	c.calls++
	if c.calls <= c.n {
		return nil, repositories.ErrDuplicateToken
	}
	return c.MemoryStore.CreateShareLink(ctx, in)
}

func newTestService(t *testing.T) (*shareService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return NewShareService(store).(*shareService), store
}

func mustTir(t *testing.T, store repositories.Store) *models.Tir {
	t.Helper()
	tr, err := store.CreateTir(context.Background(), &models.InsertTir{Phone: "+90 532 111 2233", Plate: "34 TIR 01"})
	require.NoError(t, err)
	return tr
}

func linkByID(t *testing.T, store repositories.Store, id string) *models.ShareLink {
	t.Helper()
	l, err := store.GetShareLink(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, l)
	return l
}

func TestCreateTirShare(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.CreateTirShare(ctx, "missing", nil)
	assert.ErrorIs(t, err, xerr.ErrTirNotFound)

	tr := mustTir(t, store)
	link, err := svc.CreateTirShare(ctx, tr.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ShareTypeTir, link.Type)
	assert.Equal(t, tr.ID, link.TirID)
	assert.Len(t, link.Token, token.Length)
	assert.True(t, link.Active)
	assert.Zero(t, link.AccessCount)
	assert.Nil(t, link.ExpiryDate)
}

func TestCreateListShare(t *testing.T) {
	svc, _ := newTestService(t)
	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Millisecond)

	link, err := svc.CreateListShare(context.Background(), &expiry)
	require.NoError(t, err)
	assert.Equal(t, models.ShareTypeList, link.Type)
	assert.Empty(t, link.TirID)
	require.NotNil(t, link.ExpiryDate)
	assert.True(t, expiry.Equal(*link.ExpiryDate))
}

func TestCreateShare_TokensAreUnique(t *testing.T) {
	svc, _ := newTestService(t)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		link, err := svc.CreateListShare(context.Background(), nil)
		require.NoError(t, err)
		_, dup := seen[link.Token]
		require.False(t, dup, "token issued twice: %s", link.Token)
		seen[link.Token] = struct{}{}
	}
}

func TestCreateShare_RetriesOnCollision(t *testing.T) {
	store := &collidingStore{MemoryStore: repositories.NewMemoryStore(), n: 2}
	svc := NewShareService(store)

	link, err := svc.CreateListShare(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, link.Token)
	assert.Equal(t, 3, store.calls)

	store.calls, store.n = 0, tokenAttempts
	_, err = svc.CreateListShare(context.Background(), nil)
	assert.ErrorIs(t, err, repositories.ErrDuplicateToken)
	assert.Equal(t, tokenAttempts, store.calls)
}

func TestListShareLinks(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	tr := mustTir(t, store)
	_, err := svc.CreateTirShare(ctx, tr.ID, nil)
	require.NoError(t, err)
	_, err = svc.CreateListShare(ctx, nil)
	require.NoError(t, err)

	tirLinks, err := svc.ListShareLinks(ctx, models.ShareTypeTir)
	require.NoError(t, err)
	assert.Len(t, tirLinks, 1)

	listLinks, err := svc.ListShareLinks(ctx, models.ShareTypeList)
	require.NoError(t, err)
	assert.Len(t, listLinks, 1)

	_, err = svc.ListShareLinks(ctx, models.ShareType("truck"))
	assert.ErrorIs(t, err, xerr.ErrInvalidShareType)
}

func TestUpdateShareLink(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	off := false
	_, err := svc.UpdateShareLink(ctx, "missing", &models.ShareLinkPatch{Active: &off})
	assert.ErrorIs(t, err, xerr.ErrShareLinkNotFound)

	link, err := svc.CreateListShare(ctx, nil)
	require.NoError(t, err)
	updated, err := svc.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{Active: &off})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, link.Token, updated.Token)
	assert.Equal(t, link.Type, updated.Type)

	_, err = svc.ResolveList(ctx, link.Token)
	assert.ErrorIs(t, err, xerr.ErrShareLinkInvalid)

	on := true
	_, err = svc.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{Active: &on})
	require.NoError(t, err)
	_, err = svc.ResolveList(ctx, link.Token)
	assert.NoError(t, err)
}

func TestDeleteShareLink(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	link, err := svc.CreateListShare(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShareLink(ctx, link.ID))
	assert.ErrorIs(t, svc.DeleteShareLink(ctx, link.ID), xerr.ErrShareLinkNotFound)

	_, err = svc.ResolveList(ctx, link.Token)
	assert.ErrorIs(t, err, xerr.ErrShareLinkInvalid)
}

func TestResolveTir_CountsAccess(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	tr := mustTir(t, store)
	size := int64(1024)
	_, err := store.CreateDocument(ctx, &models.InsertDocument{
		TirID: tr.ID, FileName: "cmr.pdf", FileType: models.FileTypeCMR,
		CloudinaryURL: "memory://cmr", CloudinaryPublicID: "cmr", FileSize: &size,
	})
	require.NoError(t, err)
	link, err := svc.CreateTirShare(ctx, tr.ID, nil)
	require.NoError(t, err)

	detail, err := svc.ResolveTir(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, detail.ID)
	assert.Len(t, detail.Documents, 1)
	assert.Len(t, detail.DocumentsByType.CMR, 1)
	assert.NotNil(t, detail.DocumentsByType.Doctor)

	got := linkByID(t, store, link.ID)
	assert.Equal(t, int64(1), got.AccessCount)
	assert.NotNil(t, got.LastAccessed)

	_, err = svc.ResolveTir(ctx, link.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), linkByID(t, store, link.ID).AccessCount)
}

func TestResolve_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	tr := mustTir(t, store)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	past := fixed.Add(-time.Minute)
	future := fixed.Add(time.Minute)

	tirLink, err := svc.CreateTirShare(ctx, tr.ID, nil)
	require.NoError(t, err)
	listLink, err := svc.CreateListShare(ctx, nil)
	require.NoError(t, err)
	expiredLink, err := svc.CreateTirShare(ctx, tr.ID, &past)
	require.NoError(t, err)
	liveLink, err := svc.CreateTirShare(ctx, tr.ID, &future)
	require.NoError(t, err)
	off := false
	inactive, err := svc.CreateTirShare(ctx, tr.ID, nil)
	require.NoError(t, err)
	_, err = svc.UpdateShareLink(ctx, inactive.ID, &models.ShareLinkPatch{Active: &off})
	require.NoError(t, err)

	tests := []struct {
		name    string
		resolve func() error
		link    *models.ShareLink
		wantErr error
	}{
		{
			name:    "unknown token",
			resolve: func() error { _, err := svc.ResolveTir(ctx, strings.Repeat("x", token.Length)); return err },
			wantErr: xerr.ErrShareLinkInvalid,
		},
		{
			name:    "list token on tir endpoint",
			resolve: func() error { _, err := svc.ResolveTir(ctx, listLink.Token); return err },
			link:    listLink,
			wantErr: xerr.ErrShareLinkInvalid,
		},
		{
			name:    "tir token on list endpoint",
			resolve: func() error { _, err := svc.ResolveList(ctx, tirLink.Token); return err },
			link:    tirLink,
			wantErr: xerr.ErrShareLinkInvalid,
		},
		{
			name:    "inactive",
			resolve: func() error { _, err := svc.ResolveTir(ctx, inactive.Token); return err },
			link:    inactive,
			wantErr: xerr.ErrShareLinkInvalid,
		},
		{
			name:    "expired",
			resolve: func() error { _, err := svc.ResolveTir(ctx, expiredLink.Token); return err },
			link:    expiredLink,
			wantErr: xerr.ErrShareLinkExpired,
		},
		{
			name:    "expiry in the future",
			resolve: func() error { _, err := svc.ResolveTir(ctx, liveLink.Token); return err },
			link:    liveLink,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resolve()
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, int64(1), linkByID(t, store, tt.link.ID).AccessCount)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.link != nil {
				got := linkByID(t, store, tt.link.ID)
				assert.Zero(t, got.AccessCount)
				assert.Nil(t, got.LastAccessed)
			}
		})
	}
}

func TestResolveTir_MissingTruck(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	tok, err := token.New()
	require.NoError(t, err)
	link, err := store.CreateShareLink(ctx, &models.InsertShareLink{
		Type: models.ShareTypeTir, TirID: "gone", Token: tok, Active: true,
	})
	require.NoError(t, err)

	_, err = svc.ResolveTir(ctx, tok)
	assert.ErrorIs(t, err, xerr.ErrTirNotFound)
	assert.Zero(t, linkByID(t, store, link.ID).AccessCount)
}

func TestResolveList(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	mustTir(t, store)
	mustTir(t, store)
	link, err := svc.CreateListShare(ctx, nil)
	require.NoError(t, err)

	list, err := svc.ResolveList(ctx, link.Token)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "34 TIR 01", list[0].Plate)
	assert.Equal(t, int64(1), linkByID(t, store, link.ID).AccessCount)
}
