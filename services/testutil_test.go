package services

import (
	"testing"

	"delivery-platform/config"
	"delivery-platform/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test, migrated and
// seeded with the default settings (service fee 5%, driver share 80%).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.JWTSecret = []byte("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedSettings(db))
	return db
}

// seedRestaurant creates an open restaurant with delivery fee 10 and two
// available menu items priced 50 and 20.
func seedRestaurant(t *testing.T, db *gorm.DB) (*models.Restaurant, []models.MenuItem) {
	t.Helper()
	restaurant := models.Restaurant{
		Name:        "مطعم الاختبار",
		DeliveryFee: 10,
		IsActive:    true,
		IsOpen:      true,
	}
	require.NoError(t, db.Create(&restaurant).Error)

	items := []models.MenuItem{
		{RestaurantID: restaurant.ID, Name: "شاورما", Price: 50, IsAvailable: true, PreparationTime: 20},
		{RestaurantID: restaurant.ID, Name: "عصير", Price: 20, IsAvailable: true, PreparationTime: 5},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return &restaurant, items
}

func seedDriver(t *testing.T, db *gorm.DB, phone string) *models.Account {
	t.Helper()
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	driver := models.Account{
		Phone:        &phone,
		PasswordHash: hash,
		Name:         "driver " + phone,
		Role:         models.RoleDriver,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&driver).Error)
	return &driver
}

// placeTestOrder creates a baseline order: two units of the first item
// (price 50), delivery fee 10, service fee 5%, total 115.
func placeTestOrder(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, items []models.MenuItem) *models.Order {
	t.Helper()
	order, err := CreateOrder(db, CreateOrderInput{
		CustomerName:  "أحمد",
		CustomerPhone: "+967700000001",
		RestaurantID:  restaurant.ID,
		Items: []OrderItemInput{
			{MenuItemID: items[0].ID, Quantity: 2},
		},
		DeliveryAddress: models.Address{Address: "شارع الستين، صنعاء"},
	})
	require.NoError(t, err)
	return order
}

// advanceTo walks an order along the lifecycle to the wanted status.
func advanceTo(t *testing.T, db *gorm.DB, orderID string, want models.OrderStatus) *models.Order {
	t.Helper()
	path := []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusPickedUp,
		models.StatusDelivered,
	}
	var order *models.Order
	var err error
	for _, s := range path {
		order, err = TransitionStatus(db, orderID, s, SystemActor)
		require.NoError(t, err)
		if s == want {
			return order
		}
	}
	t.Fatalf("status %s is not on the lifecycle path", want)
	return nil
}
