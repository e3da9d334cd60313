package services

import (
	"testing"
	"time"

	"delivery-platform/apperr"
	"delivery-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAdmin(t *testing.T, db *gorm.DB, email string) *models.Account {
	t.Helper()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	admin := models.Account{
		Email:        &email,
		PasswordHash: hash,
		Name:         "admin",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func TestLoginAdmin(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db, "admin@test.local")

	result, err := LoginAdmin(db, "admin@test.local", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleAdmin, result.Account.Role)

	session, err := Validate(db, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, session.AccountID)
	assert.Equal(t, models.RoleAdmin, session.Role)
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db, "admin@test.local")

	_, wrongPassword := LoginAdmin(db, "admin@test.local", "nope")
	_, unknownUser := LoginAdmin(db, "ghost@test.local", "secret123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.True(t, apperr.Is(wrongPassword, apperr.Authentication))
	assert.True(t, apperr.Is(unknownUser, apperr.Authentication))
	// identical messages, so a caller cannot probe which accounts exist
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	require.NoError(t, db.Model(admin).Update("is_active", false).Error)
	_, inactive := LoginAdmin(db, "admin@test.local", "secret123")
	assert.True(t, apperr.Is(inactive, apperr.Authentication))
	assert.Equal(t, wrongPassword.Error(), inactive.Error())
}

func TestLoginDriverByPhone(t *testing.T) {
	db := setupTestDB(t)
	driver := seedDriver(t, db, "+967771000001")

	result, err := LoginDriver(db, "+967771000001", "password123")
	require.NoError(t, err)
	assert.Equal(t, driver.ID, result.Account.ID)

	// an admin password cannot log in through the driver endpoint
	seedAdmin(t, db, "admin@test.local")
	_, err = LoginDriver(db, "admin@test.local", "secret123")
	assert.True(t, apperr.Is(err, apperr.Authentication))
}

func TestValidateExpiredSessionIsRemoved(t *testing.T) {
	db := setupTestDB(t)
	seedDriver(t, db, "+967771000001")

	result, err := LoginDriver(db, "+967771000001", "password123")
	require.NoError(t, err)

	// age the stored session past its expiry
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", result.Token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = Validate(db, result.Token)
	assert.True(t, apperr.Is(err, apperr.Authentication))

	// lazily deleted: the row is gone
	var count int64
	db.Model(&models.Session{}).Where("token = ?", result.Token).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestValidateExpiredTokenRemovesSession(t *testing.T) {
	db := setupTestDB(t)
	driver := seedDriver(t, db, "+967771000001")

	// a session whose token already carries a past expiry
	session := models.Session{
		AccountID: driver.ID,
		Role:      models.RoleDriver,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, session.BeforeCreate(nil))
	token, err := signToken(&session)
	require.NoError(t, err)
	session.Token = token
	require.NoError(t, db.Create(&session).Error)

	_, err = Validate(db, token)
	assert.True(t, apperr.Is(err, apperr.Authentication))

	// the dead row is cleaned up even though signature parsing failed first
	var count int64
	db.Model(&models.Session{}).Where("token = ?", token).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestLogoutIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedDriver(t, db, "+967771000001")

	result, err := LoginDriver(db, "+967771000001", "password123")
	require.NoError(t, err)

	require.NoError(t, Logout(db, result.Token))
	require.NoError(t, Logout(db, result.Token))
	require.NoError(t, Logout(db, "never-was-a-token"))

	_, err = Validate(db, result.Token)
	assert.True(t, apperr.Is(err, apperr.Authentication))
}

func TestValidateRejectsForgedToken(t *testing.T) {
	db := setupTestDB(t)
	_, err := Validate(db, "not-a-real-token")
	assert.True(t, apperr.Is(err, apperr.Authentication))
}
