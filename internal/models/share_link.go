package models

import (
	"time"
)

// ShareType selects what a share link exposes.
type ShareType string

const (
	ShareTypeTir  ShareType = "tir"
	ShareTypeList ShareType = "list"
)

func (st ShareType) Valid() bool {
	return st == ShareTypeTir || st == ShareTypeList
}

// ShareLink is a capability token granting read-only access to one truck
// (type tir) or to the summary list (type list).
type ShareLink struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Type         ShareType  `gorm:"type:varchar(8);not null;index" json:"type"`
	TirID        string     `gorm:"type:varchar(36);index" json:"tirId,omitempty"`
	Token        string     `gorm:"type:varchar(32);not null;uniqueIndex" json:"token"`
	Active       bool       `gorm:"not null" json:"active"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	LastAccessed *time.Time `json:"lastAccessed,omitempty"`
	AccessCount  int64      `gorm:"not null;default:0" json:"accessCount"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
}

func (ShareLink) TableName() string {
	return "sharelinks"
}

// Expired reports whether the link has an expiry strictly before now.
func (s *ShareLink) Expired(now time.Time) bool {
	return s.ExpiryDate != nil && s.ExpiryDate.Before(now)
}

// InsertShareLink is a ShareLink without id, createdAt, lastAccessed and accessCount.
type InsertShareLink struct {
	Type       ShareType  `json:"type" validate:"required,oneof=tir list"`
	TirID      string     `json:"tirId,omitempty" validate:"required_if=Type tir,excluded_if=Type list"`
	Token      string     `json:"token" validate:"required,len=32"`
	Active     bool       `json:"active"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// ShareLinkPatch carries the only mutable fields of a share link.
type ShareLinkPatch struct {
	Active     *bool        `json:"active"`
	ExpiryDate OptionalTime `json:"expiryDate"`
}

// Apply merges the patch over s.
func (p *ShareLinkPatch) Apply(s *ShareLink) {
	if p == nil {
		return
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	if p.ExpiryDate.Set {
		s.ExpiryDate = p.ExpiryDate.Time
	}
}

// Empty reports whether the patch changes nothing.
func (p *ShareLinkPatch) Empty() bool {
	return p == nil || (p.Active == nil && !p.ExpiryDate.Set)
}
