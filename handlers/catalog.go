package handlers

import (
	"net/http"

	"delivery-platform/config"
	"delivery-platform/models"
	"delivery-platform/services"

	"github.com/gin-gonic/gin"
)

// Admin CRUD for the catalog: restaurants, menu items, special offers,
// system settings. Thin gorm passthroughs; the order core never reads
// anything here except through its own snapshots.

// CreateRestaurant registers a restaurant
func CreateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := c.ShouldBindJSON(&restaurant); err != nil {
		badRequest(c, err)
		return
	}
	if restaurant.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name is required"})
		return
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "restaurant": restaurant})
}

// UpdateRestaurant edits restaurant fields. Historical orders keep their
// denormalized snapshot of the old name.
func UpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "restaurant not found"})
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		badRequest(c, err)
		return
	}
	delete(updates, "id")
	delete(updates, "created_at")
	if err := config.DB.Model(&restaurant).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update restaurant"})
		return
	}
	config.DB.First(&restaurant, "id = ?", restaurant.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// DeactivateRestaurant hides a restaurant without orphaning its orders
func DeactivateRestaurant(c *gin.Context) {
	res := config.DB.Model(&models.Restaurant{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to deactivate restaurant"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddMenuItem creates a menu item under a restaurant
func AddMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	item.RestaurantID = c.Param("id")
	var count int64
	config.DB.Model(&models.Restaurant{}).Where("id = ?", item.RestaurantID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "restaurant not found"})
		return
	}
	if item.Name == "" || item.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name and a positive price are required"})
		return
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "menu_item": item})
}

// UpdateMenuItem edits a menu item. Existing order snapshots are
// untouched by price changes.
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, "id = ?", c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "menu item not found"})
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		badRequest(c, err)
		return
	}
	delete(updates, "id")
	delete(updates, "restaurant_id")
	delete(updates, "created_at")
	if err := config.DB.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update menu item"})
		return
	}
	config.DB.First(&item, "id = ?", item.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "menu_item": item})
}

// DeleteMenuItem removes a menu item; past orders keep their snapshots
func DeleteMenuItem(c *gin.Context) {
	res := config.DB.Delete(&models.MenuItem{}, "id = ?", c.Param("itemId"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete menu item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateOffer registers a special offer
func CreateOffer(c *gin.Context) {
	var offer models.SpecialOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		badRequest(c, err)
		return
	}
	if offer.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "title is required"})
		return
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create offer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "offer": offer})
}

// UpdateOffer edits an offer
func UpdateOffer(c *gin.Context) {
	var offer models.SpecialOffer
	if err := config.DB.First(&offer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "offer not found"})
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		badRequest(c, err)
		return
	}
	delete(updates, "id")
	delete(updates, "usage_count")
	delete(updates, "created_at")
	if err := config.DB.Model(&offer).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update offer"})
		return
	}
	config.DB.First(&offer, "id = ?", offer.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "offer": offer})
}

// DeleteOffer removes an offer
func DeleteOffer(c *gin.Context) {
	res := config.DB.Delete(&models.SpecialOffer{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete offer"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "offer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminListSettings returns all settings, including admin-only ones
func AdminListSettings(c *gin.Context) {
	settings, err := services.ListSettings(config.DB, false)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// AdminUpdateSetting writes one setting value, creating the key if needed
func AdminUpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	setting, err := services.UpsertSetting(config.DB, c.Param("key"), req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "setting": setting})
}
