package services

import (
	"time"

	"delivery-platform/apperr"
	"delivery-platform/models"

	"gorm.io/gorm"
)

// AdminDashboard is the platform-wide snapshot for the back office.
// Every call recomputes from the store; nothing is cached.
type AdminDashboard struct {
	TotalOrders   int64          `json:"total_orders"`
	TodayOrders   int64          `json:"today_orders"`
	TotalRevenue  float64        `json:"total_revenue"`
	TodayRevenue  float64        `json:"today_revenue"`
	PendingOrders int64          `json:"pending_orders"`
	ActiveDrivers int64          `json:"active_drivers"`
	Restaurants   int64          `json:"restaurants"`
	Customers     int64          `json:"customers"`
	RecentOrders  []models.Order `json:"recent_orders"`
}

// revenueFilter: paid orders count always; cash orders count from
// placement (the platform collects on delivery, so a placed cash order is
// committed revenue).
const revenueFilter = "(payment_status = ? OR payment_method = ?)"

// GetAdminDashboard aggregates the global counters and the most recent
// orders, newest first.
func GetAdminDashboard(db *gorm.DB, recentLimit int) (*AdminDashboard, error) {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dash := &AdminDashboard{}

	if err := db.Model(&models.Order{}).Count(&dash.TotalOrders).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count orders")
	}
	if err := db.Model(&models.Order{}).
		Where("created_at >= ?", midnight).
		Count(&dash.TodayOrders).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count today's orders")
	}

	if err := db.Model(&models.Order{}).
		Where(revenueFilter, models.PaymentPaid, models.PayCash).
		Where("status <> ?", models.StatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&dash.TotalRevenue).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to sum revenue")
	}
	if err := db.Model(&models.Order{}).
		Where(revenueFilter, models.PaymentPaid, models.PayCash).
		Where("status <> ?", models.StatusCancelled).
		Where("created_at >= ?", midnight).
		Select("COALESCE(SUM(total), 0)").
		Scan(&dash.TodayRevenue).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to sum today's revenue")
	}

	if err := db.Model(&models.Order{}).
		Where("status = ?", models.StatusPending).
		Count(&dash.PendingOrders).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count pending orders")
	}
	if err := db.Model(&models.Account{}).
		Where("role = ? AND is_active = ?", models.RoleDriver, true).
		Count(&dash.ActiveDrivers).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count drivers")
	}
	if err := db.Model(&models.Restaurant{}).Count(&dash.Restaurants).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count restaurants")
	}
	if err := db.Model(&models.Order{}).
		Distinct("customer_phone").
		Count(&dash.Customers).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to count customers")
	}

	if err := db.Preload("Driver").
		Order("created_at desc").
		Limit(recentLimit).
		Find(&dash.RecentOrders).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to load recent orders")
	}

	return dash, nil
}
