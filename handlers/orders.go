package handlers

import (
	"net/http"

	"delivery-platform/config"
	"delivery-platform/models"
	"delivery-platform/services"
	"delivery-platform/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PlaceOrder creates a new order from the customer site. Customers are
// not accounts, so this endpoint is public.
func PlaceOrder(c *gin.Context) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	order, err := services.CreateOrder(config.DB, in)
	if err != nil {
		fail(c, err)
		return
	}

	// best effort: a broken notifications table must not fail the order
	if err := services.Notify(config.DB, models.NotifyOrderUpdate,
		"طلب جديد", "new order "+order.OrderNumber, "admin", nil,
		gin.H{"order_id": order.ID, "order_number": order.OrderNumber}); err != nil {
		logrus.WithError(err).WithField("order", order.OrderNumber).
			Warn("failed to record order notification")
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// GetOrder returns one order with its tracking history; accepts the
// internal id or the human-facing order number.
func GetOrder(c *gin.Context) {
	order, err := services.GetOrder(config.DB, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"order":        order,
		"status_label": statemachine.StatusLabel(order.Status),
	})
}

// GetOrderTracking returns just the append-only tracking log
func GetOrderTracking(c *gin.Context) {
	order, err := services.GetOrder(config.DB, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
		"status":   order.Status,
		"events":   order.TrackingEvents,
	})
}

// GetStateMachineInfo documents the order lifecycle for API consumers
func GetStateMachineInfo(c *gin.Context) {
	labels := gin.H{}
	for _, e := range statemachine.Edges() {
		labels[string(e.From)] = statemachine.StatusLabel(e.From)
		labels[string(e.To)] = statemachine.StatusLabel(e.To)
	}
	c.JSON(http.StatusOK, gin.H{
		"transitions": statemachine.Edges(),
		"labels":      labels,
	})
}
