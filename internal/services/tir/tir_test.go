package tir

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/storage"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// failingDocStore fails every document insert.
type failingDocStore struct {
	*repositories.MemoryStore
}

func (failingDocStore) CreateDocument(context.Context, *models.InsertDocument) (*models.Document, error) {
	return nil, errBoom
}

func newTestService(t *testing.T) (TirService, *repositories.MemoryStore, *storage.MemoryBlobStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	blobs := storage.NewMemoryBlobStore()
	return NewTirService(store, blobs, ""), store, blobs
}

func pdf(fileType models.FileType) *UploadFile {
	return &UploadFile{
		Data:        []byte("%PDF-1.4 test"),
		FileName:    "t1.pdf",
		ContentType: "application/pdf",
		FileType:    fileType,
	}
}

func mustTir(t *testing.T, svc TirService, phone string) *models.Tir {
	t.Helper()
	tr, err := svc.CreateTir(context.Background(), &models.InsertTir{Phone: phone, Plate: "34 ABC 123"})
	require.NoError(t, err)
	return tr
}

func TestCreateTir_RequiresPhone(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateTir(context.Background(), &models.InsertTir{Plate: "34 ABC 123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, xerr.ErrInvalidTir)
	var ve *xerr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Issues, 1)
	assert.Equal(t, "phone", ve.Issues[0].Field)
}

func TestListTirs_CountsDocuments(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	a := mustTir(t, svc, "+90 555 000 0001")
	mustTir(t, svc, "+90 555 000 0002")
	time.Sleep(5 * time.Millisecond)

	_, err := svc.UploadDocument(ctx, a.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)
	_, err = svc.UploadDocument(ctx, a.ID, pdf(models.FileTypeCMR))
	require.NoError(t, err)

	list, err := svc.ListTirs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	counts := map[string]int64{}
	for _, s := range list {
		counts[s.ID] = s.DocumentCount
	}
	assert.Equal(t, int64(2), counts[a.ID])
	// a was touched by the uploads, so it is listed first
	assert.Equal(t, a.ID, list[0].ID)
}

func TestGetTir(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.GetTir(ctx, "missing")
	assert.ErrorIs(t, err, xerr.ErrTirNotFound)

	tr := mustTir(t, svc, "+90 555 000 0001")
	_, err = svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeInvoice))
	require.NoError(t, err)

	detail, err := svc.GetTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.DocumentCount)
	assert.Len(t, detail.Documents, 1)
	assert.Len(t, detail.DocumentsByType.Invoice, 1)
	assert.Empty(t, detail.DocumentsByType.T1)
	assert.NotNil(t, detail.DocumentsByType.T1)
}

func TestUpdateTir(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	loc := "Kapıkule"
	_, err := svc.UpdateTir(ctx, "missing", &models.TirPatch{Location: &loc})
	assert.ErrorIs(t, err, xerr.ErrTirNotFound)

	tr := mustTir(t, svc, "+90 555 000 0001")
	time.Sleep(5 * time.Millisecond)
	updated, err := svc.UpdateTir(ctx, tr.ID, &models.TirPatch{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, loc, updated.Location)
	assert.Equal(t, tr.Phone, updated.Phone)
	assert.True(t, updated.LastUpdated.After(tr.LastUpdated))

	empty := ""
	_, err = svc.UpdateTir(ctx, tr.ID, &models.TirPatch{Phone: &empty})
	assert.ErrorIs(t, err, xerr.ErrInvalidTir)
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")
	time.Sleep(5 * time.Millisecond)

	doc, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)

	assert.Equal(t, tr.ID, doc.TirID)
	assert.Equal(t, models.FileTypeT1, doc.FileType)
	assert.Equal(t, "application/pdf", doc.MimeType)
	require.NotNil(t, doc.FileSize)
	assert.Equal(t, int64(len("%PDF-1.4 test")), *doc.FileSize)
	assert.True(t, strings.HasPrefix(doc.CloudinaryPublicID, DefaultFolder+"/"+tr.ID+"_"))
	assert.True(t, blobs.Has(doc.CloudinaryPublicID))

	got, err := store.GetTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.True(t, got.LastUpdated.After(tr.LastUpdated))
}

func TestUploadDocument_UnknownTir(t *testing.T) {
	svc, _, blobs := newTestService(t)

	_, err := svc.UploadDocument(context.Background(), "missing", pdf(models.FileTypeT1))
	assert.ErrorIs(t, err, xerr.ErrTirNotFound)
	assert.Empty(t, blobs.Uploads())
}

func TestUploadDocument_BlobFailure(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")
	blobs.UploadErr = errBoom

	_, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	var ue *xerr.UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, xerr.KindUpload, xerr.KindOf(err))

	n, err := store.CountDocumentsByTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUploadDocument_StoreFailureRemovesBlob(t *testing.T) {
	ctx := context.Background()
	mem := repositories.NewMemoryStore()
	blobs := storage.NewMemoryBlobStore()
	svc := NewTirService(failingDocStore{mem}, blobs, "docs")
	tr := mustTir(t, svc, "+90 555 000 0001")

	_, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.ErrorIs(t, err, errBoom)

	require.Len(t, blobs.Uploads(), 1)
	require.Len(t, blobs.Deletes(), 1)
	assert.True(t, strings.HasPrefix(blobs.Deletes()[0], "docs/"+tr.ID+"_"))
	assert.Zero(t, blobs.Len())
}

func TestUploadDocument_InvalidMetadataRemovesBlob(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")

	_, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileType("Passport")))
	require.ErrorIs(t, err, xerr.ErrInvalidDocument)
	assert.Len(t, blobs.Deletes(), 1)
	assert.Zero(t, blobs.Len())

	n, err := store.CountDocumentsByTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUploadDocument_CompensatesAfterCancel(t *testing.T) {
	mem := repositories.NewMemoryStore()
	blobs := storage.NewMemoryBlobStore()
	svc := NewTirService(failingDocStore{mem}, blobs, "")
	tr := mustTir(t, svc, "+90 555 000 0001")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.Error(t, err)
	assert.Zero(t, blobs.Len())
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")
	doc, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)
	before, err := store.GetTir(ctx, tr.ID)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, svc.DeleteDocument(ctx, doc.ID))
	assert.False(t, blobs.Has(doc.CloudinaryPublicID))

	got, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	after, err := store.GetTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.True(t, after.LastUpdated.After(before.LastUpdated))

	assert.ErrorIs(t, svc.DeleteDocument(ctx, doc.ID), xerr.ErrDocumentNotFound)
}

func TestDeleteDocument_BlobFailureStillDeletes(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")
	doc, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)
	blobs.DeleteErr = errBoom

	require.NoError(t, svc.DeleteDocument(ctx, doc.ID))
	got, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteTir_Cascades(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")
	other := mustTir(t, svc, "+90 555 000 0002")

	d1, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)
	d2, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeCMR))
	require.NoError(t, err)
	kept, err := svc.UploadDocument(ctx, other.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)
	_, err = store.CreateShareLink(ctx, &models.InsertShareLink{
		Type: models.ShareTypeTir, TirID: tr.ID, Token: strings.Repeat("a", 32), Active: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTir(ctx, tr.ID))

	assert.False(t, blobs.Has(d1.CloudinaryPublicID))
	assert.False(t, blobs.Has(d2.CloudinaryPublicID))
	assert.True(t, blobs.Has(kept.CloudinaryPublicID))

	n, err := store.CountDocumentsByTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	links, err := store.ListShareLinksByTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	assert.ErrorIs(t, svc.DeleteTir(ctx, tr.ID), xerr.ErrTirNotFound)
}

func TestDeleteTir_BlobFailureStillDeletes(t *testing.T) {
	ctx := context.Background()
	svc, store, blobs := newTestService(t)
	tr := mustTir(t, svc, "+90 555 000 0001")
	_, err := svc.UploadDocument(ctx, tr.ID, pdf(models.FileTypeT1))
	require.NoError(t, err)
	blobs.DeleteErr = errBoom

	require.NoError(t, svc.DeleteTir(ctx, tr.ID))
	got, err := store.GetTir(ctx, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
