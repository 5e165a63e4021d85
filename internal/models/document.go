package models

import (
	"time"
)

// FileType is the closed set of paperwork categories.
type FileType string

const (
	FileTypeT1             FileType = "T1"
	FileTypeCMR            FileType = "CMR"
	FileTypeInvoice        FileType = "Invoice"
	FileTypeDoctor         FileType = "Doctor"
	FileTypeTurkishInvoice FileType = "TurkishInvoice"
	FileTypeOther          FileType = "Other"
)

// FileTypes lists every category in display order.
var FileTypes = []FileType{
	FileTypeT1,
	FileTypeCMR,
	FileTypeInvoice,
	FileTypeDoctor,
	FileTypeTurkishInvoice,
	FileTypeOther,
}

// Valid reports whether ft belongs to the closed set.
func (ft FileType) Valid() bool {
	for _, known := range FileTypes {
		if ft == known {
			return true
		}
	}
	return false
}

// ParseFileType coerces client input to a known category, falling back to Other.
func ParseFileType(raw string) FileType {
	ft := FileType(raw)
	if ft.Valid() {
		return ft
	}
	return FileTypeOther
}

// Document is one scanned paper attached to a truck. Never mutated in place.
type Document struct {
	ID                 string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TirID              string    `gorm:"type:varchar(36);not null;index" json:"tirId"`
	FileName           string    `gorm:"type:varchar(255);not null" json:"fileName"`
	FileType           FileType  `gorm:"type:varchar(32);not null;default:'Other'" json:"fileType"`
	CloudinaryURL      string    `gorm:"type:varchar(1024);not null" json:"cloudinaryUrl"`
	CloudinaryPublicID string    `gorm:"type:varchar(255);not null" json:"cloudinaryPublicId"`
	UploadDate         time.Time `gorm:"not null;index" json:"uploadDate"`
	FileSize           *int64    `json:"fileSize,omitempty"`
	MimeType           string    `gorm:"type:varchar(128)" json:"mimeType,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// InsertDocument is a Document without id and uploadDate.
type InsertDocument struct {
	TirID              string   `json:"tirId" validate:"required"`
	FileName           string   `json:"fileName" validate:"required"`
	FileType           FileType `json:"fileType" validate:"required,oneof=T1 CMR Invoice Doctor TurkishInvoice Other"`
	CloudinaryURL      string   `json:"cloudinaryUrl" validate:"required"`
	CloudinaryPublicID string   `json:"cloudinaryPublicId" validate:"required"`
	FileSize           *int64   `json:"fileSize,omitempty" validate:"omitnil,gte=0"`
	MimeType           string   `json:"mimeType,omitempty"`
}

// DocumentsByType groups a truck's documents by category. Every category is
// always present; an empty category serialises as [].
type DocumentsByType struct {
	T1             []Document `json:"T1"`
	CMR            []Document `json:"CMR"`
	Invoice        []Document `json:"Invoice"`
	Doctor         []Document `json:"Doctor"`
	TurkishInvoice []Document `json:"TurkishInvoice"`
	Other          []Document `json:"Other"`
}

// GroupByType buckets docs by FileType, preserving their order. Unknown
// categories land in Other.
func GroupByType(docs []Document) DocumentsByType {
	g := DocumentsByType{
		T1:             []Document{},
		CMR:            []Document{},
		Invoice:        []Document{},
		Doctor:         []Document{},
		TurkishInvoice: []Document{},
		Other:          []Document{},
	}
	for _, d := range docs {
		switch d.FileType {
		case FileTypeT1:
			g.T1 = append(g.T1, d)
		case FileTypeCMR:
			g.CMR = append(g.CMR, d)
		case FileTypeInvoice:
			g.Invoice = append(g.Invoice, d)
		case FileTypeDoctor:
			g.Doctor = append(g.Doctor, d)
		case FileTypeTurkishInvoice:
			g.TurkishInvoice = append(g.TurkishInvoice, d)
		default:
			g.Other = append(g.Other, d)
		}
	}
	return g
}

// Get returns the bucket for ft.
func (g DocumentsByType) Get(ft FileType) []Document {
	switch ft {
	case FileTypeT1:
		return g.T1
	case FileTypeCMR:
		return g.CMR
	case FileTypeInvoice:
		return g.Invoice
	case FileTypeDoctor:
		return g.Doctor
	case FileTypeTurkishInvoice:
		return g.TurkishInvoice
	default:
		return g.Other
	}
}
