package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCard   PaymentMethod = "card"
	PayWallet PaymentMethod = "wallet"
)

// ActorType identifies who triggered an order event
type ActorType string

const (
	ActorSystem     ActorType = "system"
	ActorAdmin      ActorType = "admin"
	ActorDriver     ActorType = "driver"
	ActorRestaurant ActorType = "restaurant"
)

// OrderItem is a point-in-time snapshot of a menu item. Later menu edits
// never change it.
type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Address is the structured delivery destination stored on the order.
type Address struct {
	Title     string   `json:"title,omitempty"`
	Address   string   `json:"address"`
	Building  string   `json:"building,omitempty"`
	Floor     string   `json:"floor,omitempty"`
	Apartment string   `json:"apartment,omitempty"`
	Landmark  string   `json:"landmark,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Order struct {
	ID           string  `json:"id" gorm:"primaryKey;size:36"`
	OrderNumber  string  `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerName string  `json:"customer_name" gorm:"not null"`
	CustomerPhone string `json:"customer_phone" gorm:"index;not null"`

	RestaurantID   string      `json:"restaurant_id" gorm:"index;not null"`
	RestaurantName string      `json:"restaurant_name"`
	Restaurant     *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DriverID       *string     `json:"driver_id" gorm:"index"`
	Driver         *Account    `json:"driver,omitempty" gorm:"foreignKey:DriverID"`

	Status        OrderStatus   `json:"status" gorm:"index;not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null;default:'pending'"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null;default:'cash'"`

	Items    datatypes.JSONSlice[OrderItem] `json:"items"`
	Subtotal float64                        `json:"subtotal" gorm:"not null"`
	DeliveryFee float64                     `json:"delivery_fee" gorm:"default:0"`
	ServiceFee  float64                     `json:"service_fee" gorm:"default:0"`
	Discount    float64                     `json:"discount" gorm:"default:0"`
	Tax         float64                     `json:"tax" gorm:"default:0"`
	Total       float64                     `json:"total" gorm:"not null"`

	DeliveryAddress      datatypes.JSONType[Address] `json:"delivery_address"`
	DeliveryInstructions string                      `json:"delivery_instructions,omitempty"`
	EstimatedDeliveryTime *time.Time                 `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time                 `json:"actual_delivery_time,omitempty"`

	DriverEarnings float64 `json:"driver_earnings" gorm:"default:0"`
	DriverNotes    string  `json:"driver_notes,omitempty"`

	TrackingEvents []OrderTrackingEvent `json:"tracking_events,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// BreakdownConsistent checks the monetary invariant
// total = subtotal + delivery fee + service fee + tax - discount
// within half a currency cent of rounding slack.
func (o *Order) BreakdownConsistent() bool {
	want := o.Subtotal + o.DeliveryFee + o.ServiceFee + o.Tax - o.Discount
	diff := o.Total - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.005
}

// OrderTrackingEvent is one append-only audit entry in an order's history.
// Rows are never updated or deleted.
type OrderTrackingEvent struct {
	ID            string         `json:"id" gorm:"primaryKey;size:36"`
	OrderID       string         `json:"order_id" gorm:"index;not null"`
	Status        OrderStatus    `json:"status" gorm:"not null"`
	Message       string         `json:"message"`
	Location      datatypes.JSON `json:"location,omitempty"`
	CreatedBy     string         `json:"created_by"`
	CreatedByType ActorType      `json:"created_by_type" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (e *OrderTrackingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
