package services

import (
	"strings"
	"testing"

	"delivery-platform/apperr"
	"delivery-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderBreakdown(t *testing.T) {
	db := setupTestDB(t)
	restaurant, items := seedRestaurant(t, db)

	order := placeTestOrder(t, db, restaurant, items)

	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 10.0, order.DeliveryFee)
	assert.Equal(t, 5.0, order.ServiceFee) // 5% of 100
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, 0.0, order.Tax)
	assert.Equal(t, 115.0, order.Total)
	assert.True(t, order.BreakdownConsistent())

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.PayCash, order.PaymentMethod)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, restaurant.Name, order.RestaurantName)
	require.NotNil(t, order.EstimatedDeliveryTime)

	// initial tracking event is written with the order
	var events []models.OrderTrackingEvent
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.StatusPending, events[0].Status)
	assert.Equal(t, models.ActorSystem, events[0].CreatedByType)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	restaurant, items := seedRestaurant(t, db)

	base := CreateOrderInput{
		CustomerName:    "أحمد",
		CustomerPhone:   "+967700000001",
		RestaurantID:    restaurant.ID,
		DeliveryAddress: models.Address{Address: "شارع الستين"},
	}

	t.Run("empty items", func(t *testing.T) {
		in := base
		in.Items = nil
		_, err := CreateOrder(db, in)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		in := base
		in.RestaurantID = "no-such-id"
		in.Items = []OrderItemInput{{MenuItemID: items[0].ID, Quantity: 1}}
		_, err := CreateOrder(db, in)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("unavailable item", func(t *testing.T) {
		require.NoError(t, db.Model(&items[1]).Update("is_available", false).Error)
		in := base
		in.Items = []OrderItemInput{{MenuItemID: items[1].ID, Quantity: 1}}
		_, err := CreateOrder(db, in)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("foreign item", func(t *testing.T) {
		other, otherItems := seedRestaurant(t, db)
		_ = other
		in := base
		in.Items = []OrderItemInput{{MenuItemID: otherItems[0].ID, Quantity: 1}}
		_, err := CreateOrder(db, in)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("closed restaurant", func(t *testing.T) {
		require.NoError(t, db.Model(restaurant).Update("is_open", false).Error)
		in := base
		in.Items = []OrderItemInput{{MenuItemID: items[0].ID, Quantity: 1}}
		_, err := CreateOrder(db, in)
		assert.True(t, apperr.Is(err, apperr.Validation))
		require.NoError(t, db.Model(restaurant).Update("is_open", true).Error)
	})

	t.Run("below minimum order", func(t *testing.T) {
		require.NoError(t, db.Model(restaurant).Update("minimum_order", 500).Error)
		in := base
		in.Items = []OrderItemInput{{MenuItemID: items[0].ID, Quantity: 1}}
		_, err := CreateOrder(db, in)
		assert.True(t, apperr.Is(err, apperr.Validation))
		require.NoError(t, db.Model(restaurant).Update("minimum_order", 0).Error)
	})
}

func TestOrderLifecycleScenario(t *testing.T) {
	db := setupTestDB(t)
	restaurant, items := seedRestaurant(t, db)
	driver := seedDriver(t, db, "+967771000001")

	order := placeTestOrder(t, db, restaurant, items)
	assert.Equal(t, 115.0, order.Total)

	// picked_up before a driver is set must fail with a precondition error
	advanceTo(t, db, order.ID, models.StatusReady)
	_, err := TransitionStatus(db, order.ID, models.StatusPickedUp, SystemActor)
	assert.True(t, apperr.Is(err, apperr.Precondition))

	assigned, err := AssignDriver(db, order.ID, driver.ID, SystemActor)
	require.NoError(t, err)
	require.NotNil(t, assigned.DriverID)
	assert.Equal(t, driver.ID, *assigned.DriverID)
	assert.Equal(t, 8.0, assigned.DriverEarnings) // 80% of the 10 delivery fee

	_, err = TransitionStatus(db, order.ID, models.StatusPickedUp,
		Actor{ID: driver.ID, Type: models.ActorDriver})
	require.NoError(t, err)

	delivered, err := TransitionStatus(db, order.ID, models.StatusDelivered,
		Actor{ID: driver.ID, Type: models.ActorDriver})
	require.NoError(t, err)
	require.NotNil(t, delivered.ActualDeliveryTime)

	// terminal: nothing moves a delivered order
	for _, next := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCancelled,
	} {
		_, err := TransitionStatus(db, order.ID, next, SystemActor)
		assert.True(t, apperr.Is(err, apperr.InvalidTransition), "delivered → %s", next)
	}

	// tracking log is monotonic: pending through delivered plus assignment
	var events []models.OrderTrackingEvent
	require.NoError(t, db.Where("order_id = ?", order.ID).
		Order("created_at asc").Find(&events).Error)
	require.GreaterOrEqual(t, len(events), 6)
	assert.Equal(t, models.StatusPending, events[0].Status)
	assert.Equal(t, models.StatusDelivered, events[len(events)-1].Status)
}

func TestTransitionRejectsSkips(t *testing.T) {
	db := setupTestDB(t)
	restaurant, items := seedRestaurant(t, db)

	tests := []struct {
		name string
		to   models.OrderStatus
	}{
		{"pending to preparing", models.StatusPreparing},
		{"pending to ready", models.StatusReady},
		{"pending to picked_up", models.StatusPickedUp},
		{"pending to delivered", models.StatusDelivered},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := placeTestOrder(t, db, restaurant, items)
			_, err := TransitionStatus(db, order.ID, tc.to, SystemActor)
			require.Error(t, err)
			kind := apperr.KindOf(err)
			assert.Contains(t, []apperr.Kind{apperr.InvalidTransition, apperr.Precondition}, kind)

			// state unchanged on rejection
			var reloaded models.Order
			require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
			assert.Equal(t, models.StatusPending, reloaded.Status)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		order := placeTestOrder(t, db, restaurant, items)
		_, err := TransitionStatus(db, order.ID, "teleported", SystemActor)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		order := placeTestOrder(t, db, restaurant, items)
		advanceTo(t, db, order.ID, models.StatusPreparing)
		cancelled, err := CancelOrder(db, order.ID, "المطعم مغلق", SystemActor)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)

		// the reason is written with the event itself; the log stays
		// append-only
		var events []models.OrderTrackingEvent
		require.NoError(t, db.Where("order_id = ? AND status = ?",
			order.ID, models.StatusCancelled).Find(&events).Error)
		require.Len(t, events, 1)
		assert.Equal(t, "cancelled: المطعم مغلق", events[0].Message)

		_, err = TransitionStatus(db, order.ID, models.StatusConfirmed, SystemActor)
		assert.True(t, apperr.Is(err, apperr.InvalidTransition))
	})
}

func TestSnapshotImmutableAfterMenuEdit(t *testing.T) {
	db := setupTestDB(t)
	restaurant, items := seedRestaurant(t, db)

	order := placeTestOrder(t, db, restaurant, items)
	require.NoError(t, db.Model(&items[0]).Update("price", 999).Error)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 50.0, reloaded.Items[0].Price)
	assert.Equal(t, 100.0, reloaded.Subtotal)
	assert.Equal(t, 115.0, reloaded.Total)
}

func TestAssignDriver(t *testing.T) {
	db := setupTestDB(t)
	restaurant, items := seedRestaurant(t, db)
	first := seedDriver(t, db, "+967771000001")
	second := seedDriver(t, db, "+967771000002")

	t.Run("pending order is not assignable", func(t *testing.T) {
		order := placeTestOrder(t, db, restaurant, items)
		_, err := AssignDriver(db, order.ID, first.ID, SystemActor)
		assert.True(t, apperr.Is(err, apperr.InvalidTransition))
	})

	t.Run("second assignment conflicts", func(t *testing.T) {
		order := placeTestOrder(t, db, restaurant, items)
		advanceTo(t, db, order.ID, models.StatusConfirmed)

		_, err := AssignDriver(db, order.ID, first.ID, SystemActor)
		require.NoError(t, err)

		_, err = AssignDriver(db, order.ID, second.ID, SystemActor)
		assert.True(t, apperr.Is(err, apperr.Conflict))

		// exactly one winner persisted
		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
		require.NotNil(t, reloaded.DriverID)
		assert.Equal(t, first.ID, *reloaded.DriverID)
	})

	t.Run("unknown driver", func(t *testing.T) {
		order := placeTestOrder(t, db, restaurant, items)
		advanceTo(t, db, order.ID, models.StatusConfirmed)
		_, err := AssignDriver(db, order.ID, "no-such-driver", SystemActor)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("deactivated driver", func(t *testing.T) {
		inactive := seedDriver(t, db, "+967771000003")
		require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
		order := placeTestOrder(t, db, restaurant, items)
		advanceTo(t, db, order.ID, models.StatusConfirmed)
		_, err := AssignDriver(db, order.ID, inactive.ID, SystemActor)
		assert.True(t, apperr.Is(err, apperr.Validation))
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber()
		assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{6}$`, n)
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}
