package handlers

import (
	"net/http"

	"delivery-platform/apperr"
	"delivery-platform/config"
	"delivery-platform/middleware"
	"delivery-platform/models"
	"delivery-platform/services"

	"github.com/gin-gonic/gin"
)

// DriverDashboard returns today's and all-time stats, the current active
// order, and the available-orders queue. The driver app polls this.
func DriverDashboard(c *gin.Context) {
	dash, err := services.GetDriverDashboard(config.DB, middleware.GetAccountID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": dash})
}

// AvailableOrders lists unassigned orders the driver can accept,
// oldest first
func AvailableOrders(c *gin.Context) {
	orders, err := services.ListAvailableOrders(config.DB)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "orders": orders})
}

// AcceptOrder claims an unassigned order for the calling driver. At most
// one of two racing drivers wins; the loser gets 409.
func AcceptOrder(c *gin.Context) {
	order, err := services.AcceptOrder(config.DB, middleware.GetAccountID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

type DriverStatusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateDeliveryStatus moves the driver's own order along the lifecycle
// (picked_up, delivered, cancelled).
func UpdateDeliveryStatus(c *gin.Context) {
	driverID := middleware.GetAccountID(c)

	var req DriverStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := services.GetOrder(config.DB, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if order.DriverID == nil || *order.DriverID != driverID {
		fail(c, apperr.Authorizationf("you are not the assigned driver for this order"))
		return
	}

	updated, err := services.TransitionStatus(config.DB, order.ID, req.Status,
		services.Actor{ID: driverID, Type: models.ActorDriver})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": updated})
}

// DriverNotifications lists notifications addressed to drivers
func DriverNotifications(c *gin.Context) {
	driverID := middleware.GetAccountID(c)
	items, err := services.ListNotifications(config.DB, "driver", &driverID, 50)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items})
}
