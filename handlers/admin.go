package handlers

import (
	"net/http"
	"strconv"

	"delivery-platform/config"
	"delivery-platform/middleware"
	"delivery-platform/models"
	"delivery-platform/services"

	"github.com/gin-gonic/gin"
)

// AdminDashboard returns the platform-wide snapshot
func AdminDashboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("recent", "10"))
	dash, err := services.GetAdminDashboard(config.DB, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": dash})
}

// AdminListOrders returns all orders, newest first, with optional filters
func AdminListOrders(c *gin.Context) {
	query := config.DB.Preload("Driver")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if phone := c.Query("customer_phone"); phone != "" {
		query = query.Where("customer_phone = ?", phone)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
}

type AdminStatusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

// AdminUpdateOrderStatus transitions an order on behalf of the back
// office. The lifecycle graph still applies — admins get no skips.
func AdminUpdateOrderStatus(c *gin.Context) {
	var req AdminStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	actor := services.Actor{ID: middleware.GetAccountID(c), Type: models.ActorAdmin}

	var (
		order *models.Order
		err   error
	)
	if req.Status == models.StatusCancelled {
		order, err = services.CancelOrder(config.DB, c.Param("id"), req.Reason, actor)
	} else {
		order, err = services.TransitionStatus(config.DB, c.Param("id"), req.Status, actor)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
}

// AdminAssignDriver hands an order to a chosen driver
func AdminAssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := services.AssignDriver(config.DB, c.Param("id"), req.DriverID,
		services.Actor{ID: middleware.GetAccountID(c), Type: models.ActorAdmin})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// AdminListDrivers returns all driver accounts
func AdminListDrivers(c *gin.Context) {
	var drivers []models.Account
	if err := config.DB.Where("role = ?", models.RoleDriver).
		Order("name asc").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(drivers), "drivers": drivers})
}

type CreateDriverRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminCreateDriver registers a new driver account
func AdminCreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var count int64
	config.DB.Model(&models.Account{}).Where("phone = ?", req.Phone).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "phone already registered"})
		return
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	driver := models.Account{
		Phone:        &req.Phone,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleDriver,
		IsActive:     true,
	}
	if err := config.DB.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create driver"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "driver": accountProjection(&driver)})
}

type UpdateDriverRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// AdminUpdateDriver edits a driver's profile or toggles the active flag.
// Accounts are never hard-deleted; deactivation is the delete.
func AdminUpdateDriver(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var driver models.Account
	if err := config.DB.First(&driver, "id = ? AND role = ?", c.Param("id"), models.RoleDriver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "driver not found"})
		return
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&driver).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update driver"})
			return
		}
	}
	config.DB.First(&driver, "id = ?", driver.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "driver": accountProjection(&driver)})
}

// AdminDeactivateDriver soft-deletes a driver by clearing the active flag
func AdminDeactivateDriver(c *gin.Context) {
	res := config.DB.Model(&models.Account{}).
		Where("id = ? AND role = ?", c.Param("id"), models.RoleDriver).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to deactivate driver"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminNotifications lists back-office notifications
func AdminNotifications(c *gin.Context) {
	items, err := services.ListNotifications(config.DB, "admin", nil, 50)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items})
}

// AdminMarkNotificationRead marks one notification as read
func AdminMarkNotificationRead(c *gin.Context) {
	if err := services.MarkNotificationRead(config.DB, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
