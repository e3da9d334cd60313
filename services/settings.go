package services

import (
	"errors"
	"strconv"

	"delivery-platform/apperr"
	"delivery-platform/models"

	"gorm.io/gorm"
)

// GetSetting looks up one system setting by key.
func GetSetting(db *gorm.DB, key string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	if err := db.Where("key = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("setting %q not found", key)
		}
		return nil, apperr.Internalf(err, "failed to load setting")
	}
	return &s, nil
}

// SettingFloat reads a numeric setting, falling back when the key is
// missing or not a number. Policy values (fees, shares) come through here.
func SettingFloat(db *gorm.DB, key string, fallback float64) float64 {
	s, err := GetSetting(db, key)
	if err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return fallback
	}
	return v
}

// ListSettings returns settings, optionally restricted to public ones.
func ListSettings(db *gorm.DB, publicOnly bool) ([]models.SystemSetting, error) {
	var settings []models.SystemSetting
	q := db.Order("key asc")
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	if err := q.Find(&settings).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to load settings")
	}
	return settings, nil
}

// UpsertSetting writes a setting value, creating the key if needed.
func UpsertSetting(db *gorm.DB, key, value string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	err := db.Where("key = ?", key).First(&s).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s = models.SystemSetting{Key: key, Value: value}
		if err := db.Create(&s).Error; err != nil {
			return nil, apperr.Internalf(err, "failed to create setting")
		}
	case err != nil:
		return nil, apperr.Internalf(err, "failed to load setting")
	default:
		if err := db.Model(&s).Update("value", value).Error; err != nil {
			return nil, apperr.Internalf(err, "failed to update setting")
		}
		s.Value = value
	}
	return &s, nil
}
