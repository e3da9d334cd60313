package services

import (
	"fmt"
	"testing"
	"time"

	"delivery-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedPaidOrder(t *testing.T, db *gorm.DB, restaurantID string, total float64, phone string) *models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:   GenerateOrderNumber(),
		CustomerName:  "عميل",
		CustomerPhone: phone,
		RestaurantID:  restaurantID,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PayCash,
		Items: datatypes.NewJSONSlice([]models.OrderItem{
			{MenuItemID: "x", Name: "item", Price: total, Quantity: 1},
		}),
		Subtotal: total,
		Total:    total,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func TestAdminDashboardAggregates(t *testing.T) {
	db := setupTestDB(t)
	restaurant, _ := seedRestaurant(t, db)
	seedDriver(t, db, "+967771000001")
	inactive := seedDriver(t, db, "+967771000002")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	// five cash orders of 100 each → revenue 500 at placement
	for i := 0; i < 5; i++ {
		seedPaidOrder(t, db, restaurant.ID, 100, fmt.Sprintf("+96770000000%d", i))
	}

	dash, err := GetAdminDashboard(db, 3)
	require.NoError(t, err)

	assert.EqualValues(t, 5, dash.TotalOrders)
	assert.EqualValues(t, 5, dash.TodayOrders)
	assert.Equal(t, 500.0, dash.TotalRevenue)
	assert.Equal(t, 500.0, dash.TodayRevenue)
	assert.EqualValues(t, 5, dash.PendingOrders)
	assert.EqualValues(t, 1, dash.ActiveDrivers) // deactivated driver excluded
	assert.EqualValues(t, 1, dash.Restaurants)
	assert.EqualValues(t, 5, dash.Customers) // distinct phones
	assert.Len(t, dash.RecentOrders, 3)
}

func TestAdminDashboardRevenuePolicy(t *testing.T) {
	db := setupTestDB(t)
	restaurant, _ := seedRestaurant(t, db)

	// cash counts at placement
	seedPaidOrder(t, db, restaurant.ID, 100, "+967700000001")

	// card order counts only once paid
	card := seedPaidOrder(t, db, restaurant.ID, 200, "+967700000002")
	require.NoError(t, db.Model(card).Update("payment_method", models.PayCard).Error)

	// cancelled cash order never counts
	cancelled := seedPaidOrder(t, db, restaurant.ID, 400, "+967700000003")
	require.NoError(t, db.Model(cancelled).Update("status", models.StatusCancelled).Error)

	dash, err := GetAdminDashboard(db, 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, dash.TotalRevenue)

	require.NoError(t, db.Model(card).Update("payment_status", models.PaymentPaid).Error)
	dash, err = GetAdminDashboard(db, 10)
	require.NoError(t, err)
	assert.Equal(t, 300.0, dash.TotalRevenue)
}

func TestAdminDashboardRecentOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	restaurant, _ := seedRestaurant(t, db)

	older := seedPaidOrder(t, db, restaurant.ID, 100, "+967700000001")
	newer := seedPaidOrder(t, db, restaurant.ID, 100, "+967700000002")
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	dash, err := GetAdminDashboard(db, 10)
	require.NoError(t, err)
	require.Len(t, dash.RecentOrders, 2)
	assert.Equal(t, newer.ID, dash.RecentOrders[0].ID)
	assert.Equal(t, older.ID, dash.RecentOrders[1].ID)
}
