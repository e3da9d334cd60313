package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotifyOrderUpdate NotificationType = "order_update"
	NotifyPromotion   NotificationType = "promotion"
	NotifySystem      NotificationType = "system"
	NotifyDriverAlert NotificationType = "driver_alert"
)

// Notification is display-only: rows are recorded for clients to poll,
// nothing guarantees delivery.
type Notification struct {
	ID      string           `json:"id" gorm:"primaryKey;size:36"`
	Type    NotificationType `json:"type" gorm:"not null"`
	Title   string           `json:"title" gorm:"not null"`
	Message string           `json:"message" gorm:"not null"`
	Data    datatypes.JSON   `json:"data,omitempty"`

	RecipientType string  `json:"recipient_type" gorm:"not null"`
	RecipientID   *string `json:"recipient_id,omitempty" gorm:"index"`

	IsRead    bool      `json:"is_read" gorm:"default:false"`
	IsSent    bool      `json:"is_sent" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
