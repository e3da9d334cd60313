package handlers

import (
	"net/http"
	"time"

	"delivery-platform/config"
	"delivery-platform/models"
	"delivery-platform/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Public read endpoints for the customer-facing site. No auth.

// ListCategories returns active categories in display order
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Where("is_active = ?", true).
		Order("sort_order asc, name asc").
		Find(&categories)
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// ListRestaurants returns active restaurants, optionally by category
func ListRestaurants(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	var restaurants []models.Restaurant
	query.Order("name asc").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurant returns one restaurant with its menu
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	err := config.DB.Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc, name asc")
	}).First(&restaurant, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// GetMenu returns a restaurant's menu items
func GetMenu(c *gin.Context) {
	var items []models.MenuItem
	config.DB.Where("restaurant_id = ?", c.Param("id")).
		Order("sort_order asc, name asc").
		Find(&items)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "menu_items": items})
}

// ListActiveOffers returns offers currently inside their validity window
func ListActiveOffers(c *gin.Context) {
	offers, err := services.ActiveOffers(config.DB, time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "offers": offers})
}

// PublicSettings returns only settings flagged public
func PublicSettings(c *gin.Context) {
	settings, err := services.ListSettings(config.DB, true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}
