package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-engine-server/database"
	"booking-engine-server/models"
)

// RegisterCatalogRoutes registers the public catalog read routes
func RegisterCatalogRoutes(router *gin.RouterGroup) {
	router.GET("/categories", GetServiceCategories)
	router.GET("/services", GetServices)
}

// GetServiceCategories returns all active service categories
func GetServiceCategories(c *gin.Context) {
	db := database.GetDB()

	var categories []models.ServiceCategory
	if err := db.Where("is_active = ?", true).Order("sort_order ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch service categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

// GetServices returns active catalog services, optionally filtered by category
func GetServices(c *gin.Context) {
	db := database.GetDB()

	query := db.Preload("Category").Where("is_active = ?", true)
	if categoryKey := c.Query("category"); categoryKey != "" {
		query = query.Joins("JOIN service_categories ON service_categories.id = services.category_id").
			Where("service_categories.key = ?", categoryKey)
	}

	var catalogServices []models.Service
	if err := query.Order("services.id ASC").Find(&catalogServices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch services",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"services": catalogServices,
	})
}
