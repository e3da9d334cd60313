package services

import (
	"errors"
	"time"

	"delivery-platform/apperr"
	"delivery-platform/models"
	"delivery-platform/statemachine"

	"gorm.io/gorm"
)

// ListAvailableOrders returns unassigned orders a driver may accept,
// oldest first so the queue is fair.
func ListAvailableOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("driver_id IS NULL AND status IN ?", statemachine.AssignableStatuses).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load available orders")
	}
	return orders, nil
}

// ActiveOrder returns the driver's current delivery, or nil when idle.
func ActiveOrder(db *gorm.DB, driverID string) (*models.Order, error) {
	var order models.Order
	err := db.Where("driver_id = ? AND status IN ?", driverID, statemachine.ActiveStatuses).
		Order("created_at asc").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internalf(err, "failed to load active order")
	}
	return &order, nil
}

// AcceptOrder is the driver-initiated form of AssignDriver: it also
// enforces one active delivery per driver. The assignment itself stays a
// conditional update, so racing drivers get at most one winner.
func AcceptOrder(db *gorm.DB, driverID, orderID string) (*models.Order, error) {
	active, err := ActiveOrder(db, driverID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, apperr.Conflictf("driver already has an active delivery (%s)", active.OrderNumber)
	}
	return AssignDriver(db, orderID, driverID, Actor{ID: driverID, Type: models.ActorDriver})
}

// DriverDashboard aggregates what the driver app polls for.
type DriverDashboard struct {
	TodayDeliveries int64          `json:"today_deliveries"`
	TodayEarnings   float64        `json:"today_earnings"`
	TotalDeliveries int64          `json:"total_deliveries"`
	TotalEarnings   float64        `json:"total_earnings"`
	ActiveOrder     *models.Order  `json:"active_order,omitempty"`
	AvailableOrders []models.Order `json:"available_orders"`
}

// GetDriverDashboard recomputes the driver's stats from the store. Today
// starts at local midnight.
func GetDriverDashboard(db *gorm.DB, driverID string) (*DriverDashboard, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dash := &DriverDashboard{}

	if err := db.Model(&models.Order{}).
		Where("driver_id = ? AND status = ?", driverID, models.StatusDelivered).
		Count(&dash.TotalDeliveries).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count deliveries")
	}
	if err := db.Model(&models.Order{}).
		Where("driver_id = ? AND status = ?", driverID, models.StatusDelivered).
		Select("COALESCE(SUM(driver_earnings), 0)").
		Scan(&dash.TotalEarnings).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to sum earnings")
	}

	if err := db.Model(&models.Order{}).
		Where("driver_id = ? AND status = ? AND actual_delivery_time >= ?",
			driverID, models.StatusDelivered, midnight).
		Count(&dash.TodayDeliveries).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count today's deliveries")
	}
	if err := db.Model(&models.Order{}).
		Where("driver_id = ? AND status = ? AND actual_delivery_time >= ?",
			driverID, models.StatusDelivered, midnight).
		Select("COALESCE(SUM(driver_earnings), 0)").
		Scan(&dash.TodayEarnings).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to sum today's earnings")
	}

	active, err := ActiveOrder(db, driverID)
	if err != nil {
		return nil, err
	}
	dash.ActiveOrder = active

	available, err := ListAvailableOrders(db)
	if err != nil {
		return nil, err
	}
	dash.AvailableOrders = available

	return dash, nil
}
