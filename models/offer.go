package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OfferType string

const (
	OfferDiscount     OfferType = "discount"
	OfferFreeDelivery OfferType = "free_delivery"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// SpecialOffer is a discount rule scoped to a restaurant, a category, or a
// set of menu items, with a validity window and an optional usage cap.
type SpecialOffer struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Title       string       `json:"title" gorm:"not null"`
	TitleEn     string       `json:"title_en"`
	Description string       `json:"description"`
	Type        OfferType    `json:"type" gorm:"not null;default:'discount'"`
	DiscountType    DiscountType `json:"discount_type" gorm:"default:'percentage'"`
	DiscountPercent int          `json:"discount_percent" gorm:"default:0"`
	DiscountAmount  float64      `json:"discount_amount" gorm:"default:0"`
	MinimumOrder    float64      `json:"minimum_order" gorm:"default:0"`
	MaxDiscount     *float64     `json:"max_discount,omitempty"`

	RestaurantID *string                     `json:"restaurant_id,omitempty" gorm:"index"`
	CategoryID   *string                     `json:"category_id,omitempty"`
	MenuItemIDs  datatypes.JSONSlice[string] `json:"menu_item_ids,omitempty"`

	StartDate  *time.Time                `json:"start_date,omitempty"`
	EndDate    *time.Time                `json:"end_date,omitempty"`
	StartTime  string                    `json:"start_time,omitempty"`
	EndTime    string                    `json:"end_time,omitempty"`
	DaysOfWeek datatypes.JSONSlice[int] `json:"days_of_week,omitempty"`

	UsageLimit *int `json:"usage_limit,omitempty"`
	UsageCount int  `json:"usage_count" gorm:"default:0"`
	IsActive   bool `json:"is_active" gorm:"default:true"`
	Priority   int  `json:"priority" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *SpecialOffer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
