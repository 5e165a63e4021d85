package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. It is the fallback when no
// database is reachable and the store used by tests.
type MemoryStore struct {
	mu         sync.RWMutex
	tirs       map[string]models.Tir
	documents  map[string]models.Document
	shareLinks map[string]models.ShareLink
	tokens     map[string]string // token -> share link id

	clock func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tirs:       make(map[string]models.Tir),
		documents:  make(map[string]models.Document),
		shareLinks: make(map[string]models.ShareLink),
		tokens:     make(map[string]string),
		clock:      now,
	}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) GetTir(_ context.Context, id string) (*models.Tir, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tirs[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryStore) ListTirs(_ context.Context) ([]models.Tir, error) {
	s.mu.RLock()
	out := make([]models.Tir, 0, len(s.tirs))
	for _, t := range s.tirs {
		out = append(out, t)
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (s *MemoryStore) CreateTir(_ context.Context, in *models.InsertTir) (*models.Tir, error) {
	t := models.Tir{
		ID:           uuid.NewString(),
		Phone:        in.Phone,
		Plate:        in.Plate,
		TrailerPlate: in.TrailerPlate,
		Location:     in.Location,
		LastUpdated:  s.clock(),
	}
	s.mu.Lock()
	s.tirs[t.ID] = t
	s.mu.Unlock()
	return &t, nil
}

func (s *MemoryStore) UpdateTir(_ context.Context, id string, patch *models.TirPatch) (*models.Tir, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tirs[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&t)
	t.LastUpdated = s.clock()
	s.tirs[id] = t
	return &t, nil
}

func (s *MemoryStore) DeleteTir(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tirs[id]; !ok {
		return false, nil
	}
	s.deleteDocumentsByTirLocked(id)
	for linkID, l := range s.shareLinks {
		if l.Type == models.ShareTypeTir && l.TirID == id {
			delete(s.tokens, l.Token)
			delete(s.shareLinks, linkID)
		}
	}
	delete(s.tirs, id)
	return true, nil
}

func (s *MemoryStore) GetDocument(_ context.Context, id string) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *MemoryStore) ListDocumentsByTir(_ context.Context, tirID string) ([]models.Document, error) {
	s.mu.RLock()
	out := make([]models.Document, 0)
	for _, d := range s.documents {
		if d.TirID == tirID {
			out = append(out, d)
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}

func (s *MemoryStore) GroupDocumentsByType(ctx context.Context, tirID string) (models.DocumentsByType, error) {
	docs, err := s.ListDocumentsByTir(ctx, tirID)
	if err != nil {
		return models.DocumentsByType{}, err
	}
	return models.GroupByType(docs), nil
}

func (s *MemoryStore) CountDocumentsByTir(_ context.Context, tirID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, d := range s.documents {
		if d.TirID == tirID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CreateDocument(_ context.Context, in *models.InsertDocument) (*models.Document, error) {
	d := models.Document{
		ID:                 uuid.NewString(),
		TirID:              in.TirID,
		FileName:           in.FileName,
		FileType:           in.FileType,
		CloudinaryURL:      in.CloudinaryURL,
		CloudinaryPublicID: in.CloudinaryPublicID,
		UploadDate:         s.clock(),
		FileSize:           in.FileSize,
		MimeType:           in.MimeType,
	}
	s.mu.Lock()
	s.documents[d.ID] = d
	s.mu.Unlock()
	return &d, nil
}

func (s *MemoryStore) DeleteDocument(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return false, nil
	}
	delete(s.documents, id)
	return true, nil
}

func (s *MemoryStore) DeleteDocumentsByTir(_ context.Context, tirID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteDocumentsByTirLocked(tirID), nil
}

func (s *MemoryStore) deleteDocumentsByTirLocked(tirID string) int64 {
	var n int64
	for id, d := range s.documents {
		if d.TirID == tirID {
			delete(s.documents, id)
			n++
		}
	}
	return n
}

func (s *MemoryStore) GetShareLink(_ context.Context, id string) (*models.ShareLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.shareLinks[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (s *MemoryStore) GetShareLinkByToken(_ context.Context, token string) (*models.ShareLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return nil, nil
	}
	l := s.shareLinks[id]
	return &l, nil
}

func (s *MemoryStore) ListShareLinksByType(_ context.Context, t models.ShareType) ([]models.ShareLink, error) {
	return s.filterShareLinks(func(l *models.ShareLink) bool { return l.Type == t }), nil
}

func (s *MemoryStore) ListShareLinksByTir(_ context.Context, tirID string) ([]models.ShareLink, error) {
	return s.filterShareLinks(func(l *models.ShareLink) bool {
		return l.Type == models.ShareTypeTir && l.TirID == tirID
	}), nil
}

// filterShareLinks returns matching links, newest first.
func (s *MemoryStore) filterShareLinks(match func(l *models.ShareLink) bool) []models.ShareLink {
	s.mu.RLock()
	out := make([]models.ShareLink, 0)
	for _, l := range s.shareLinks {
		if match(&l) {
			out = append(out, l)
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) CreateShareLink(_ context.Context, in *models.InsertShareLink) (*models.ShareLink, error) {
	l := models.ShareLink{
		ID:         uuid.NewString(),
		Type:       in.Type,
		TirID:      in.TirID,
		Token:      in.Token,
		Active:     in.Active,
		ExpiryDate: in.ExpiryDate,
		CreatedAt:  s.clock(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.tokens[l.Token]; taken {
		return nil, ErrDuplicateToken
	}
	s.shareLinks[l.ID] = l
	s.tokens[l.Token] = l.ID
	return &l, nil
}

func (s *MemoryStore) UpdateShareLink(_ context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.shareLinks[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&l)
	s.shareLinks[id] = l
	return &l, nil
}

func (s *MemoryStore) DeleteShareLink(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.shareLinks[id]
	if !ok {
		return false, nil
	}
	delete(s.tokens, l.Token)
	delete(s.shareLinks, id)
	return true, nil
}

func (s *MemoryStore) RecordAccess(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return nil
	}
	l := s.shareLinks[id]
	at := s.clock()
	l.LastAccessed = &at
	l.AccessCount++
	s.shareLinks[id] = l
	return nil
}
