package models

import (
	"time"
)

// Tir is one truck profile tracked at the desk.
type Tir struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Phone        string    `gorm:"type:varchar(64);not null" json:"phone"`
	Plate        string    `gorm:"type:varchar(32);not null;default:''" json:"plate"`
	TrailerPlate string    `gorm:"type:varchar(32);not null;default:''" json:"trailerPlate"`
	Location     string    `gorm:"type:varchar(255);not null;default:''" json:"location"`
	LastUpdated  time.Time `gorm:"not null;index" json:"lastUpdated"`
}

// TableName keeps the collection name shared with the document store.
func (Tir) TableName() string {
	return "tirs"
}

// InsertTir is the create payload: a Tir without the server-assigned fields.
type InsertTir struct {
	Phone        string `json:"phone" validate:"required"`
	Plate        string `json:"plate"`
	TrailerPlate string `json:"trailerPlate"`
	Location     string `json:"location"`
}

// TirPatch is the partial variant of InsertTir used by PATCH /api/tirs/:id.
// A nil field is left untouched.
type TirPatch struct {
	Phone        *string `json:"phone" validate:"omitnil,min=1"`
	Plate        *string `json:"plate"`
	TrailerPlate *string `json:"trailerPlate"`
	Location     *string `json:"location"`
}

// Apply merges the patch over t.
func (p *TirPatch) Apply(t *Tir) {
	if p == nil {
		return
	}
	if p.Phone != nil {
		t.Phone = *p.Phone
	}
	if p.Plate != nil {
		t.Plate = *p.Plate
	}
	if p.TrailerPlate != nil {
		t.TrailerPlate = *p.TrailerPlate
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
}

// TirSummary is a Tir augmented with its document count (GET /api/tirs).
type TirSummary struct {
	Tir
	DocumentCount int64 `json:"documentCount"`
}

// TirDetail is the full dossier of one truck.
type TirDetail struct {
	Tir
	Documents       []Document      `json:"documents"`
	DocumentCount   int             `json:"documentCount"`
	DocumentsByType DocumentsByType `json:"documentsByType"`
}

// PublicTir is the reduced view exposed by a list share link.
type PublicTir struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	Plate       string    `json:"plate"`
	Location    string    `json:"location"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (t *Tir) Public() PublicTir {
	return PublicTir{
		ID:          t.ID,
		Phone:       t.Phone,
		Plate:       t.Plate,
		Location:    t.Location,
		LastUpdated: t.LastUpdated,
	}
}
