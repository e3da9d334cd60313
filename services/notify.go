package services

import (
	"encoding/json"

	"delivery-platform/apperr"
	"delivery-platform/models"

	"gorm.io/gorm"
)

// Notify records a notification row for clients to poll. Display only,
// no delivery guarantee.
func Notify(db *gorm.DB, typ models.NotificationType, title, message, recipientType string, recipientID *string, data any) error {
	n := models.Notification{
		Type:          typ,
		Title:         title,
		Message:       message,
		RecipientType: recipientType,
		RecipientID:   recipientID,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return apperr.Internalf(err, "failed to encode notification data")
		}
		n.Data = raw
	}
	if err := db.Create(&n).Error; err != nil {
		return apperr.Internalf(err, "failed to record notification")
	}
	return nil
}

// ListNotifications returns notifications for a recipient type (and
// optionally a specific recipient), newest first.
func ListNotifications(db *gorm.DB, recipientType string, recipientID *string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	q := db.Where("recipient_type IN ?", []string{recipientType, "all"})
	if recipientID != nil {
		q = q.Where("(recipient_id IS NULL OR recipient_id = ?)", *recipientID)
	}
	var out []models.Notification
	if err := q.Order("created_at desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to load notifications")
	}
	return out, nil
}

// MarkNotificationRead is idempotent.
func MarkNotificationRead(db *gorm.DB, id string) error {
	res := db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return apperr.Internalf(res.Error, "failed to mark notification read")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("notification not found")
	}
	return nil
}
