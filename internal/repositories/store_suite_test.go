package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite checks the behaviour every Store implementation must share.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("Tirs", func(t *testing.T) { testTirs(t, newStore(t)) })
	t.Run("DeleteTirCascades", func(t *testing.T) { testDeleteTirCascades(t, newStore(t)) })
	t.Run("Documents", func(t *testing.T) { testDocuments(t, newStore(t)) })
	t.Run("ShareLinks", func(t *testing.T) { testShareLinks(t, newStore(t)) })
	t.Run("RecordAccess", func(t *testing.T) { testRecordAccess(t, newStore(t)) })
	t.Run("UnknownIDs", func(t *testing.T) { testUnknownIDs(t, newStore(t)) })
}

// tick keeps store timestamps, kept at millisecond precision, strictly ordered.
func tick() { time.Sleep(5 * time.Millisecond) }

func shareToken(c byte) string { return strings.Repeat(string(c), 32) }

func strPtr(s string) *string { return &s }

func mustCreateTir(t *testing.T, s Store, phone string) *models.Tir {
	t.Helper()
	tir, err := s.CreateTir(context.Background(), &models.InsertTir{Phone: phone})
	require.NoError(t, err)
	require.NotNil(t, tir)
	return tir
}

func mustCreateDocument(t *testing.T, s Store, tirID string, ft models.FileType, handle string) *models.Document {
	t.Helper()
	size := int64(1024)
	d, err := s.CreateDocument(context.Background(), &models.InsertDocument{
		TirID:              tirID,
		FileName:           handle + ".pdf",
		FileType:           ft,
		CloudinaryURL:      "https://blob.example.com/" + handle,
		CloudinaryPublicID: handle,
		FileSize:           &size,
		MimeType:           "application/pdf",
	})
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func testTirs(t *testing.T, s Store) {
	ctx := context.Background()

	a, err := s.CreateTir(ctx, &models.InsertTir{Phone: "+90 532 111 2233", Plate: "34 ABC 123"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "34 ABC 123", a.Plate)
	assert.Equal(t, "", a.TrailerPlate)
	assert.Equal(t, "", a.Location)
	assert.False(t, a.LastUpdated.IsZero())

	got, err := s.GetTir(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.Phone, got.Phone)
	assert.WithinDuration(t, a.LastUpdated, got.LastUpdated, time.Millisecond)

	tick()
	b := mustCreateTir(t, s, "+90 533 000 0000")

	list, err := s.ListTirs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "most recently updated first")

	tick()
	updated, err := s.UpdateTir(ctx, a.ID, &models.TirPatch{Location: strPtr("Kapıkule")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Kapıkule", updated.Location)
	assert.Equal(t, "+90 532 111 2233", updated.Phone, "untouched fields are kept")
	assert.True(t, updated.LastUpdated.After(a.LastUpdated))

	list, err = s.ListTirs(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, list[0].ID)

	tick()
	touched, err := s.UpdateTir(ctx, b.ID, &models.TirPatch{})
	require.NoError(t, err)
	require.NotNil(t, touched)
	assert.True(t, touched.LastUpdated.After(b.LastUpdated))
	assert.Equal(t, b.Phone, touched.Phone)
}

func testDeleteTirCascades(t *testing.T, s Store) {
	ctx := context.Background()
	tir := mustCreateTir(t, s, "1")
	other := mustCreateTir(t, s, "2")

	mustCreateDocument(t, s, tir.ID, models.FileTypeCMR, "h1")
	mustCreateDocument(t, s, tir.ID, models.FileTypeT1, "h2")
	kept := mustCreateDocument(t, s, other.ID, models.FileTypeT1, "h3")

	_, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeTir, TirID: tir.ID, Token: shareToken('a'), Active: true})
	require.NoError(t, err)
	otherLink, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeTir, TirID: other.ID, Token: shareToken('b'), Active: true})
	require.NoError(t, err)
	listLink, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('c'), Active: true})
	require.NoError(t, err)

	ok, err := s.DeleteTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := s.GetTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	docs, err := s.ListDocumentsByTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)

	tirLinks, err := s.ListShareLinksByType(ctx, models.ShareTypeTir)
	require.NoError(t, err)
	require.Len(t, tirLinks, 1)
	assert.Equal(t, otherLink.ID, tirLinks[0].ID)

	byToken, err := s.GetShareLinkByToken(ctx, shareToken('a'))
	require.NoError(t, err)
	assert.Nil(t, byToken)

	remaining, err := s.GetDocument(ctx, kept.ID)
	require.NoError(t, err)
	assert.NotNil(t, remaining)

	l, err := s.GetShareLink(ctx, listLink.ID)
	require.NoError(t, err)
	assert.NotNil(t, l, "list links have no parent truck")

	ok, err = s.DeleteTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testDocuments(t *testing.T, s Store) {
	ctx := context.Background()
	tir := mustCreateTir(t, s, "1")

	first := mustCreateDocument(t, s, tir.ID, models.FileTypeCMR, "h1")
	tick()
	second := mustCreateDocument(t, s, tir.ID, models.FileTypeInvoice, "h2")
	tick()
	third := mustCreateDocument(t, s, tir.ID, models.FileTypeCMR, "h3")

	got, err := s.GetDocument(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.FileTypeCMR, got.FileType)
	assert.Equal(t, "h1", got.CloudinaryPublicID)
	require.NotNil(t, got.FileSize)
	assert.Equal(t, int64(1024), *got.FileSize)
	assert.Equal(t, "application/pdf", got.MimeType)

	docs, err := s.ListDocumentsByTir(ctx, tir.ID)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{docs[0].ID, docs[1].ID, docs[2].ID})

	n, err := s.CountDocumentsByTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	grouped, err := s.GroupDocumentsByType(ctx, tir.ID)
	require.NoError(t, err)
	assert.Len(t, grouped.CMR, 2)
	assert.Len(t, grouped.Invoice, 1)
	for _, ft := range []models.FileType{models.FileTypeT1, models.FileTypeDoctor, models.FileTypeTurkishInvoice, models.FileTypeOther} {
		assert.NotNil(t, grouped.Get(ft), "%s bucket present", ft)
		assert.Empty(t, grouped.Get(ft))
	}

	empty, err := s.GroupDocumentsByType(ctx, "no-such-tir")
	require.NoError(t, err)
	for _, ft := range models.FileTypes {
		assert.NotNil(t, empty.Get(ft))
	}

	ok, err := s.DeleteDocument(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.DeleteDocument(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := s.DeleteDocumentsByTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	n, err = s.CountDocumentsByTir(ctx, tir.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testShareLinks(t *testing.T, s Store) {
	ctx := context.Background()
	tir := mustCreateTir(t, s, "1")
	expiry := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Millisecond)

	link, err := s.CreateShareLink(ctx, &models.InsertShareLink{
		Type: models.ShareTypeTir, TirID: tir.ID, Token: shareToken('x'), Active: true, ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, link.ID)
	assert.Zero(t, link.AccessCount)
	assert.Nil(t, link.LastAccessed)
	assert.False(t, link.CreatedAt.IsZero())

	_, err = s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('x'), Active: true})
	assert.ErrorIs(t, err, ErrDuplicateToken)

	byToken, err := s.GetShareLinkByToken(ctx, shareToken('x'))
	require.NoError(t, err)
	require.NotNil(t, byToken)
	assert.Equal(t, link.ID, byToken.ID)
	assert.Equal(t, tir.ID, byToken.TirID)
	assert.True(t, byToken.Active)
	require.NotNil(t, byToken.ExpiryDate)
	assert.WithinDuration(t, expiry, *byToken.ExpiryDate, time.Millisecond)

	tick()
	listLink, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('y'), Active: true})
	require.NoError(t, err)
	assert.Empty(t, listLink.TirID)

	tirLinks, err := s.ListShareLinksByType(ctx, models.ShareTypeTir)
	require.NoError(t, err)
	require.Len(t, tirLinks, 1)
	listLinks, err := s.ListShareLinksByType(ctx, models.ShareTypeList)
	require.NoError(t, err)
	require.Len(t, listLinks, 1)
	assert.Equal(t, listLink.ID, listLinks[0].ID)

	byTir, err := s.ListShareLinksByTir(ctx, tir.ID)
	require.NoError(t, err)
	require.Len(t, byTir, 1)
	assert.Equal(t, link.ID, byTir[0].ID)

	inactive := false
	updated, err := s.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{Active: &inactive})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.ExpiryDate, "expiry untouched")
	assert.Equal(t, link.Token, updated.Token)

	cleared, err := s.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{ExpiryDate: models.OptionalTime{Set: true}})
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Nil(t, cleared.ExpiryDate)
	assert.False(t, cleared.Active)

	reread, err := s.GetShareLink(ctx, link.ID)
	require.NoError(t, err)
	require.NotNil(t, reread)
	assert.Nil(t, reread.ExpiryDate)
	assert.False(t, reread.Active)

	same, err := s.UpdateShareLink(ctx, link.ID, &models.ShareLinkPatch{})
	require.NoError(t, err)
	require.NotNil(t, same)
	assert.Equal(t, link.ID, same.ID)

	ok, err := s.DeleteShareLink(ctx, listLink.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err := s.GetShareLinkByToken(ctx, shareToken('y'))
	require.NoError(t, err)
	assert.Nil(t, gone)
	ok, err = s.DeleteShareLink(ctx, listLink.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testRecordAccess(t *testing.T, s Store) {
	ctx := context.Background()
	link, err := s.CreateShareLink(ctx, &models.InsertShareLink{Type: models.ShareTypeList, Token: shareToken('r'), Active: true})
	require.NoError(t, err)

	require.NoError(t, s.RecordAccess(ctx, link.Token))
	require.NoError(t, s.RecordAccess(ctx, link.Token))

	got, err := s.GetShareLinkByToken(ctx, link.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.AccessCount)
	require.NotNil(t, got.LastAccessed)
	assert.False(t, got.LastAccessed.Before(link.CreatedAt))

	assert.NoError(t, s.RecordAccess(ctx, shareToken('z')), "unknown token is a no-op")
}

func testUnknownIDs(t *testing.T, s Store) {
	ctx := context.Background()
	const id = "does-not-exist"

	tir, err := s.GetTir(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, tir)

	updated, err := s.UpdateTir(ctx, id, &models.TirPatch{Phone: strPtr("1")})
	require.NoError(t, err)
	assert.Nil(t, updated)

	doc, err := s.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, doc)

	ok, err := s.DeleteDocument(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	link, err := s.GetShareLink(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, link)

	patched, err := s.UpdateShareLink(ctx, id, &models.ShareLinkPatch{})
	require.NoError(t, err)
	assert.Nil(t, patched)

	ok, err = s.DeleteShareLink(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := s.ListTirs(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
