package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"delivery-platform/apperr"
	"delivery-platform/models"
	"delivery-platform/statemachine"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actor identifies who is driving an order mutation; it ends up on the
// tracking event, never gates the transition graph itself.
type Actor struct {
	ID   string
	Type models.ActorType
}

var SystemActor = Actor{Type: models.ActorSystem}

type OrderItemInput struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	CustomerName         string               `json:"customer_name" binding:"required"`
	CustomerPhone        string               `json:"customer_phone" binding:"required"`
	RestaurantID         string               `json:"restaurant_id" binding:"required"`
	Items                []OrderItemInput     `json:"items" binding:"required"`
	DeliveryAddress      models.Address       `json:"delivery_address" binding:"required"`
	DeliveryInstructions string               `json:"delivery_instructions"`
	PaymentMethod        models.PaymentMethod `json:"payment_method"`
}

// CreateOrder validates the request, snapshots prices, computes the
// monetary breakdown, and persists the order plus its first tracking event
// in one transaction.
func CreateOrder(db *gorm.DB, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validationf("order must contain at least one item")
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, "id = ?", in.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("restaurant not found")
		}
		return nil, apperr.Internalf(err, "failed to load restaurant")
	}
	if !restaurant.AcceptingOrders() {
		return nil, apperr.Validationf("restaurant %q is not accepting orders", restaurant.Name)
	}

	var (
		snapshot []models.OrderItem
		subtotal float64
		maxPrep  int
	)
	for _, reqItem := range in.Items {
		var item models.MenuItem
		if err := db.First(&item, "id = ?", reqItem.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validationf("menu item %s not found", reqItem.MenuItemID)
			}
			return nil, apperr.Internalf(err, "failed to load menu item")
		}
		if item.RestaurantID != restaurant.ID {
			return nil, apperr.Validationf("menu item %q does not belong to this restaurant", item.Name)
		}
		if !item.IsAvailable {
			return nil, apperr.Validationf("menu item %q is not available", item.Name)
		}
		subtotal += item.Price * float64(reqItem.Quantity)
		if item.PreparationTime > maxPrep {
			maxPrep = item.PreparationTime
		}
		snapshot = append(snapshot, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   reqItem.Quantity,
		})
	}
	subtotal = round2(subtotal)
	if subtotal < restaurant.MinimumOrder {
		return nil, apperr.Validationf("order subtotal %.2f is below the restaurant minimum %.2f", subtotal, restaurant.MinimumOrder)
	}

	deliveryFee := restaurant.DeliveryFee
	if deliveryFee <= 0 {
		deliveryFee = SettingFloat(db, "delivery_fee", 0)
	}
	serviceFee := round2(subtotal * SettingFloat(db, "service_fee_percentage", 0) / 100)
	tax := round2(subtotal * SettingFloat(db, "tax_percentage", 0) / 100)

	offer, discount, err := BestOffer(db, &restaurant, snapshot, subtotal, time.Now())
	if err != nil {
		return nil, err
	}
	if offer != nil && offer.Type == models.OfferFreeDelivery {
		discount = deliveryFee
	}

	total := round2(subtotal + deliveryFee + serviceFee + tax - discount)
	if total <= 0 {
		return nil, apperr.Validationf("computed order total must be positive")
	}

	method := in.PaymentMethod
	if method == "" {
		method = models.PayCash
	}

	eta := time.Now().Add(time.Duration(maxPrep+int(SettingFloat(db, "delivery_time_minutes", 45))) * time.Minute)

	order := models.Order{
		OrderNumber:          GenerateOrderNumber(),
		CustomerName:         in.CustomerName,
		CustomerPhone:        in.CustomerPhone,
		RestaurantID:         restaurant.ID,
		RestaurantName:       restaurant.Name,
		Status:               models.StatusPending,
		PaymentStatus:        models.PaymentPending,
		PaymentMethod:        method,
		Items:                snapshot,
		Subtotal:             subtotal,
		DeliveryFee:          deliveryFee,
		ServiceFee:           serviceFee,
		Discount:             discount,
		Tax:                  tax,
		Total:                total,
		DeliveryAddress:      datatypes.NewJSONType(in.DeliveryAddress),
		DeliveryInstructions: in.DeliveryInstructions,
		EstimatedDeliveryTime: &eta,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if offer != nil {
			consumed, err := ConsumeOfferUsage(tx, offer.ID)
			if err != nil {
				return err
			}
			if !consumed {
				// offer ran out between pricing and commit; reprice without it
				order.Discount = 0
				order.Total = round2(order.Subtotal + order.DeliveryFee + order.ServiceFee + order.Tax)
			}
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		event := models.OrderTrackingEvent{
			OrderID:       order.ID,
			Status:        models.StatusPending,
			Message:       "order placed",
			CreatedByType: models.ActorSystem,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.Internalf(err, "failed to create order")
	}
	return &order, nil
}

// TransitionStatus moves an order along the lifecycle graph. The status
// update and the tracking append commit together, and the update is
// conditional on the status the caller saw, so concurrent transitions
// cannot interleave silently.
func TransitionStatus(db *gorm.DB, orderID string, newStatus models.OrderStatus, actor Actor) (*models.Order, error) {
	return transitionStatus(db, orderID, newStatus, actor, "")
}

// transitionStatus carries an optional tracking message; empty means the
// default "status changed" text.
func transitionStatus(db *gorm.DB, orderID string, newStatus models.OrderStatus, actor Actor, message string) (*models.Order, error) {
	if !statemachine.IsValidStatus(newStatus) {
		return nil, apperr.Validationf("unknown order status %q", newStatus)
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}

	if statemachine.IsTerminal(order.Status) {
		return nil, apperr.InvalidTransitionf("order is already %s", order.Status)
	}
	if !statemachine.CanTransition(order.Status, newStatus) {
		return nil, apperr.InvalidTransitionf("cannot transition order from %s to %s", order.Status, newStatus)
	}
	if newStatus == models.StatusPickedUp && order.DriverID == nil {
		return nil, apperr.Preconditionf("order has no assigned driver")
	}

	updates := map[string]interface{}{"status": newStatus}
	var deliveredAt time.Time
	if newStatus == models.StatusDelivered {
		deliveredAt = time.Now()
		updates["actual_delivery_time"] = deliveredAt
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Conflictf("order was modified concurrently")
		}
		if message == "" {
			message = fmt.Sprintf("status changed from %s to %s", order.Status, newStatus)
		}
		event := models.OrderTrackingEvent{
			OrderID:       order.ID,
			Status:        newStatus,
			Message:       message,
			CreatedBy:     actor.ID,
			CreatedByType: actor.Type,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.Internalf(err, "failed to update order status")
	}

	order.Status = newStatus
	if newStatus == models.StatusDelivered {
		order.ActualDeliveryTime = &deliveredAt
	}
	return &order, nil
}

// CancelOrder transitions to cancelled with the reason recorded on the
// tracking event as it is written; events are never edited afterwards.
func CancelOrder(db *gorm.DB, orderID, reason string, actor Actor) (*models.Order, error) {
	message := ""
	if reason != "" {
		message = "cancelled: " + reason
	}
	return transitionStatus(db, orderID, models.StatusCancelled, actor, message)
}

// AssignDriver hands an unassigned order to a driver. The write is a
// single conditional UPDATE — never read-then-write — so two concurrent
// callers cannot both win.
func AssignDriver(db *gorm.DB, orderID, driverID string, actor Actor) (*models.Order, error) {
	var driver models.Account
	if err := db.First(&driver, "id = ? AND role = ?", driverID, models.RoleDriver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("driver not found")
		}
		return nil, apperr.Internalf(err, "failed to load driver")
	}
	if !driver.IsActive {
		return nil, apperr.Validationf("driver account is deactivated")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}

	share := SettingFloat(db, "driver_fee_share_percent", 80)
	earnings := round2(order.DeliveryFee * share / 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND driver_id IS NULL AND status IN ?", orderID, statemachine.AssignableStatuses).
			Updates(map[string]interface{}{
				"driver_id":       driverID,
				"driver_earnings": earnings,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return assignFailure(tx, orderID)
		}
		event := models.OrderTrackingEvent{
			OrderID:       orderID,
			Status:        order.Status,
			Message:       "driver assigned: " + driver.Name,
			CreatedBy:     actor.ID,
			CreatedByType: actor.Type,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.Internalf(err, "failed to assign driver")
	}

	order.DriverID = &driverID
	order.DriverEarnings = earnings
	return &order, nil
}

// assignFailure re-reads the order to turn a zero-row conditional update
// into the right typed error.
func assignFailure(tx *gorm.DB, orderID string) error {
	var order models.Order
	if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("order not found")
		}
		return apperr.Internalf(err, "failed to load order")
	}
	if order.DriverID != nil {
		return apperr.Conflictf("order already has a driver assigned")
	}
	return apperr.InvalidTransitionf("order in status %s cannot be assigned", order.Status)
}

// GetOrder loads one order with its tracking history, by id or by order
// number.
func GetOrder(db *gorm.DB, ref string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("id = ? OR order_number = ?", ref, ref).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}
	return &order, nil
}

// GenerateOrderNumber returns a human-facing identifier such as
// ORD-20250830-4F21A9. Uniqueness rests on the unique index; the random
// suffix makes collisions negligible.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
