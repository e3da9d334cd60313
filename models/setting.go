package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemSetting is a key-value configuration entry. Public settings are
// readable without authentication; the rest are admin-only.
type SystemSetting struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Key         string    `json:"key" gorm:"uniqueIndex;not null"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Category    string    `json:"category" gorm:"default:'general'"`
	IsPublic    bool      `json:"is_public" gorm:"default:false"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
