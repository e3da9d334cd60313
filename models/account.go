package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role defines allowed back-office roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// Account is a back-office identity: an admin or a driver.
// Customers are not accounts — orders carry their name and phone directly.
type Account struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        *string   `json:"email,omitempty" gorm:"uniqueIndex"`
	Phone        *string   `json:"phone,omitempty" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Session ties a bearer token to an account. Anyone holding a valid,
// unexpired token is authorized as that account's role.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AccountID string    `json:"account_id" gorm:"index;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	Role      Role      `json:"role" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
