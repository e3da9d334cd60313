package routes

import (
	"delivery-platform/handlers"
	"delivery-platform/middleware"
	"delivery-platform/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/admin/login", handlers.AdminLogin)
		public.POST("/driver/login", handlers.DriverLogin)

		// logout is idempotent: revoking an already-dead token still
		// succeeds, so no auth gate here
		public.POST("/admin/logout", handlers.Logout)
		public.POST("/driver/logout", handlers.Logout)

		public.GET("/categories", handlers.ListCategories)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)
		public.GET("/offers", handlers.ListActiveOffers)
		public.GET("/settings", handlers.PublicSettings)

		// ordering is open to unregistered customers
		public.POST("/orders", handlers.PlaceOrder)
		public.GET("/orders/:id", handlers.GetOrder)
		public.GET("/orders/:id/tracking", handlers.GetOrderTracking)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated (any role) ───────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Driver app ─────────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/dashboard", handlers.DriverDashboard)
		driver.GET("/orders/available", handlers.AvailableOrders)
		driver.POST("/orders/:id/accept", handlers.AcceptOrder)
		driver.PUT("/orders/:id/status", handlers.UpdateDeliveryStatus)
		driver.GET("/notifications", handlers.DriverNotifications)
	}

	// ── Admin back office ──────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/dashboard", handlers.AdminDashboard)

		admin.GET("/orders", handlers.AdminListOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/assign", handlers.AdminAssignDriver)

		admin.GET("/drivers", handlers.AdminListDrivers)
		admin.POST("/drivers", handlers.AdminCreateDriver)
		admin.PUT("/drivers/:id", handlers.AdminUpdateDriver)
		admin.DELETE("/drivers/:id", handlers.AdminDeactivateDriver)

		admin.POST("/restaurants", handlers.CreateRestaurant)
		admin.PUT("/restaurants/:id", handlers.UpdateRestaurant)
		admin.DELETE("/restaurants/:id", handlers.DeactivateRestaurant)
		admin.POST("/restaurants/:id/menu", handlers.AddMenuItem)
		admin.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		admin.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		admin.POST("/offers", handlers.CreateOffer)
		admin.PUT("/offers/:id", handlers.UpdateOffer)
		admin.DELETE("/offers/:id", handlers.DeleteOffer)

		admin.GET("/settings", handlers.AdminListSettings)
		admin.PUT("/settings/:key", handlers.AdminUpdateSetting)

		admin.GET("/notifications", handlers.AdminNotifications)
		admin.PUT("/notifications/:id/read", handlers.AdminMarkNotificationRead)
	}
}
