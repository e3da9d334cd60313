package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null"`
	NameEn    string    `json:"name_en"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color" gorm:"default:'#FF6B35'"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Restaurant struct {
	ID                   string     `json:"id" gorm:"primaryKey;size:36"`
	Name                 string     `json:"name" gorm:"not null"`
	NameEn               string     `json:"name_en"`
	Description          string     `json:"description"`
	CategoryID           *string    `json:"category_id" gorm:"index"`
	Category             *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Phone                string     `json:"phone"`
	Address              string     `json:"address"`
	DeliveryFee          float64    `json:"delivery_fee" gorm:"default:0"`
	MinimumOrder         float64    `json:"minimum_order" gorm:"default:0"`
	Rating               float64    `json:"rating" gorm:"default:0"`
	ReviewCount          int        `json:"review_count" gorm:"default:0"`
	IsActive             bool       `json:"is_active" gorm:"default:true"`
	IsOpen               bool       `json:"is_open" gorm:"default:true"`
	IsTemporarilyClosed  bool       `json:"is_temporarily_closed" gorm:"default:false"`
	TemporaryCloseReason string     `json:"temporary_close_reason,omitempty"`
	OpeningTime          string     `json:"opening_time" gorm:"default:'08:00'"`
	ClosingTime          string     `json:"closing_time" gorm:"default:'23:00'"`
	WorkingDays          string     `json:"working_days" gorm:"default:'0,1,2,3,4,5,6'"`
	MenuItems            []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AcceptingOrders reports whether new orders may be placed against the
// restaurant right now (manual flags only; schedule is advisory).
func (r *Restaurant) AcceptingOrders() bool {
	return r.IsActive && r.IsOpen && !r.IsTemporarilyClosed
}

type MenuItem struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	RestaurantID    string    `json:"restaurant_id" gorm:"index;not null"`
	Name            string    `json:"name" gorm:"not null"`
	NameEn          string    `json:"name_en"`
	Description     string    `json:"description"`
	Price           float64   `json:"price" gorm:"not null"`
	OriginalPrice   *float64  `json:"original_price,omitempty"`
	Category        string    `json:"category"`
	IsAvailable     bool      `json:"is_available" gorm:"default:true"`
	IsSpecialOffer  bool      `json:"is_special_offer" gorm:"default:false"`
	PreparationTime int       `json:"preparation_time" gorm:"default:15"`
	SortOrder       int       `json:"sort_order" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
