package services

import (
	"errors"
	"time"

	"delivery-platform/apperr"
	"delivery-platform/config"
	"delivery-platform/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

// credential failures are reported identically for unknown accounts, wrong
// passwords, and deactivated accounts, to avoid account enumeration.
const msgBadCredentials = "invalid credentials"

// Claims mirrors the stored session row inside the signed token.
type Claims struct {
	SessionID string      `json:"session_id"`
	AccountID string      `json:"account_id"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult is what a successful login returns to the HTTP layer.
type LoginResult struct {
	Token   string
	Account models.Account
}

// LoginAdmin authenticates an admin by email.
func LoginAdmin(db *gorm.DB, email, password string) (*LoginResult, error) {
	return login(db, db.Where("email = ? AND role = ?", email, models.RoleAdmin), password)
}

// LoginDriver authenticates a driver by phone.
func LoginDriver(db *gorm.DB, phone, password string) (*LoginResult, error) {
	return login(db, db.Where("phone = ? AND role = ?", phone, models.RoleDriver), password)
}

func login(db *gorm.DB, query *gorm.DB, password string) (*LoginResult, error) {
	var account models.Account
	if err := query.First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authenticationf(msgBadCredentials)
		}
		return nil, apperr.Internalf(err, "failed to look up account")
	}
	if !account.IsActive {
		return nil, apperr.Authenticationf(msgBadCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Authenticationf(msgBadCredentials)
	}

	session := models.Session{
		AccountID: account.ID,
		Role:      account.Role,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := session.BeforeCreate(nil); err != nil {
		return nil, apperr.Internalf(err, "failed to create session")
	}

	token, err := signToken(&session)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to sign token")
	}
	session.Token = token

	if err := db.Create(&session).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to store session")
	}
	return &LoginResult{Token: token, Account: account}, nil
}

func signToken(session *models.Session) (string, error) {
	claims := Claims{
		SessionID: session.ID,
		AccountID: session.AccountID,
		Role:      session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// Validate checks the token signature and the backing session row. The
// row is the capability: a logged-out token fails even with a valid
// signature. Expired rows are deleted on the way out.
func Validate(db *gorm.DB, token string) (*models.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	})
	if err != nil || !parsed.Valid {
		// the token's exp mirrors the row's ExpiresAt, so an expired
		// token means a dead row; clean it up on the way out
		if errors.Is(err, jwt.ErrTokenExpired) {
			db.Where("token = ?", token).Delete(&models.Session{})
		}
		return nil, apperr.Authenticationf("invalid or expired token")
	}

	var session models.Session
	if err := db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authenticationf("invalid or expired token")
		}
		return nil, apperr.Internalf(err, "failed to look up session")
	}
	if time.Now().After(session.ExpiresAt) {
		db.Delete(&session)
		return nil, apperr.Authenticationf("invalid or expired token")
	}
	return &session, nil
}

// Logout deletes the session. Idempotent: an unknown or already-removed
// token is still a success.
func Logout(db *gorm.DB, token string) error {
	if err := db.Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return apperr.Internalf(err, "failed to delete session")
	}
	return nil
}

// HashPassword wraps bcrypt for account creation paths.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internalf(err, "failed to hash password")
	}
	return string(hash), nil
}
