package handlers

import (
	"net/http"
	"strings"

	"delivery-platform/config"
	"delivery-platform/middleware"
	"delivery-platform/models"
	"delivery-platform/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type DriverLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func accountProjection(a *models.Account) gin.H {
	out := gin.H{
		"id":   a.ID,
		"name": a.Name,
		"role": a.Role,
	}
	if a.Email != nil {
		out["email"] = *a.Email
	}
	if a.Phone != nil {
		out["phone"] = *a.Phone
	}
	return out
}

// AdminLogin authenticates an admin by email and issues a session token
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := services.LoginAdmin(config.DB, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"admin":   accountProjection(&result.Account),
	})
}

// DriverLogin authenticates a driver by phone and issues a session token
func DriverLogin(c *gin.Context) {
	var req DriverLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := services.LoginDriver(config.DB, req.Phone, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"driver":  accountProjection(&result.Account),
	})
}

// Logout revokes the caller's session. Always succeeds, even for a token
// that was already gone, so it never sits behind auth middleware.
func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token != "" && token != authHeader {
		if err := services.Logout(config.DB, token); err != nil {
			logrus.WithError(err).Warn("failed to delete session on logout")
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProfile returns the authenticated account
func GetProfile(c *gin.Context) {
	var account models.Account
	if err := config.DB.First(&account, "id = ?", middleware.GetAccountID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "account": accountProjection(&account)})
}
