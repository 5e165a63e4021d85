package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the SQL metadata store (MySQL, PostgreSQL or SQLite). The
// *gorm.DB must be opened with TranslateError so duplicate tokens surface as
// gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Name() string {
	return "gorm:" + s.db.Dialector.Name()
}

// AutoMigrate creates or updates the three tables.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.Tir{}, &models.Document{}, &models.ShareLink{})
}

func (s *GormStore) GetTir(ctx context.Context, id string) (*models.Tir, error) {
	var t models.Tir
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tir: %w", err)
	}
	return &t, nil
}

func (s *GormStore) ListTirs(ctx context.Context) ([]models.Tir, error) {
	var tirs []models.Tir
	if err := s.db.WithContext(ctx).Order("last_updated DESC").Find(&tirs).Error; err != nil {
		return nil, fmt.Errorf("list tirs: %w", err)
	}
	return tirs, nil
}

func (s *GormStore) CreateTir(ctx context.Context, in *models.InsertTir) (*models.Tir, error) {
	t := models.Tir{
		ID:           uuid.NewString(),
		Phone:        in.Phone,
		Plate:        in.Plate,
		TrailerPlate: in.TrailerPlate,
		Location:     in.Location,
		LastUpdated:  now(),
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("create tir: %w", err)
	}
	return &t, nil
}

func (s *GormStore) UpdateTir(ctx context.Context, id string, patch *models.TirPatch) (*models.Tir, error) {
	var out *models.Tir
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Tir
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		patch.Apply(&t)
		t.LastUpdated = now()
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		out = &t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update tir: %w", err)
	}
	return out, nil
}

func (s *GormStore) DeleteTir(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tir_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("type = ? AND tir_id = ?", models.ShareTypeTir, id).Delete(&models.ShareLink{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Tir{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete tir: %w", err)
	}
	return deleted, nil
}

func (s *GormStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var d models.Document
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return &d, nil
}

func (s *GormStore) ListDocumentsByTir(ctx context.Context, tirID string) ([]models.Document, error) {
	docs := make([]models.Document, 0)
	if err := s.db.WithContext(ctx).Where("tir_id = ?", tirID).Order("upload_date DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (s *GormStore) GroupDocumentsByType(ctx context.Context, tirID string) (models.DocumentsByType, error) {
	docs, err := s.ListDocumentsByTir(ctx, tirID)
	if err != nil {
		return models.DocumentsByType{}, err
	}
	return models.GroupByType(docs), nil
}

func (s *GormStore) CountDocumentsByTir(ctx context.Context, tirID string) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Document{}).Where("tir_id = ?", tirID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *GormStore) CreateDocument(ctx context.Context, in *models.InsertDocument) (*models.Document, error) {
	d := models.Document{
		ID:                 uuid.NewString(),
		TirID:              in.TirID,
		FileName:           in.FileName,
		FileType:           in.FileType,
		CloudinaryURL:      in.CloudinaryURL,
		CloudinaryPublicID: in.CloudinaryPublicID,
		UploadDate:         now(),
		FileSize:           in.FileSize,
		MimeType:           in.MimeType,
	}
	if err := s.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &d, nil
}

func (s *GormStore) DeleteDocument(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Document{})
	if res.Error != nil {
		return false, fmt.Errorf("delete document: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) DeleteDocumentsByTir(ctx context.Context, tirID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("tir_id = ?", tirID).Delete(&models.Document{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete documents: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) findShareLink(ctx context.Context, query string, arg any) (*models.ShareLink, error) {
	var l models.ShareLink
	if err := s.db.WithContext(ctx).Where(query, arg).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find share link: %w", err)
	}
	return &l, nil
}

func (s *GormStore) GetShareLink(ctx context.Context, id string) (*models.ShareLink, error) {
	return s.findShareLink(ctx, "id = ?", id)
}

func (s *GormStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	return s.findShareLink(ctx, "token = ?", token)
}

func (s *GormStore) ListShareLinksByType(ctx context.Context, t models.ShareType) ([]models.ShareLink, error) {
	links := make([]models.ShareLink, 0)
	if err := s.db.WithContext(ctx).Where("type = ?", t).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}
	return links, nil
}

func (s *GormStore) ListShareLinksByTir(ctx context.Context, tirID string) ([]models.ShareLink, error) {
	links := make([]models.ShareLink, 0)
	err := s.db.WithContext(ctx).
		Where("type = ? AND tir_id = ?", models.ShareTypeTir, tirID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list share links: %w", err)
	}
	return links, nil
}

func (s *GormStore) CreateShareLink(ctx context.Context, in *models.InsertShareLink) (*models.ShareLink, error) {
	l := models.ShareLink{
		ID:         uuid.NewString(),
		Type:       in.Type,
		TirID:      in.TirID,
		Token:      in.Token,
		Active:     in.Active,
		ExpiryDate: in.ExpiryDate,
		CreatedAt:  now(),
	}
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("create share link: %w", err)
	}
	return &l, nil
}

func (s *GormStore) UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error) {
	var out *models.ShareLink
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.ShareLink
		if err := tx.Where("id = ?", id).First(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		patch.Apply(&l)
		if err := tx.Model(&l).Select("active", "expiry_date").Updates(&l).Error; err != nil {
			return err
		}
		out = &l
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update share link: %w", err)
	}
	return out, nil
}

func (s *GormStore) DeleteShareLink(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ShareLink{})
	if res.Error != nil {
		return false, fmt.Errorf("delete share link: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) RecordAccess(ctx context.Context, token string) error {
	err := s.db.WithContext(ctx).Model(&models.ShareLink{}).
		Where("token = ?", token).
		Updates(map[string]any{
			"access_count":  gorm.Expr("access_count + ?", 1),
			"last_accessed": now(),
		}).Error
	if err != nil {
		return fmt.Errorf("record share link access: %w", err)
	}
	return nil
}
