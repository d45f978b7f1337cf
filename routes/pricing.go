package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-engine-server/models"
	"booking-engine-server/services"
)

// RegisterPricingRoutes registers the pure calculation endpoints. These never
// fail for unknown inputs; they degrade to zero results so a price is always
// renderable.
func RegisterPricingRoutes(router *gin.RouterGroup) {
	pricing := router.Group("/pricing")
	{
		pricing.POST("/compute", computePricing)
		pricing.POST("/estimate", estimateHours)
		pricing.POST("/suggestions", suggestAddOns)
		pricing.POST("/aggregate", aggregatePayments)
	}
}

// computePricing returns the price breakdown for one service selection
func computePricing(c *gin.Context) {
	var req struct {
		ServiceID  string                   `json:"service_id" binding:"required"`
		Selections models.PricingSelections `json:"selections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pricing": services.ComputePricing(req.ServiceID, req.Selections),
	})
}

// estimateHours returns the estimated labor hours for a selection
func estimateHours(c *gin.Context) {
	var req struct {
		Category   models.CategoryKey       `json:"category" binding:"required"`
		Selections models.PricingSelections `json:"selections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"hours":   services.EstimateHours(req.Category, req.Selections),
	})
}

// suggestAddOns matches free text against the category's add-on keywords.
// The response echoes the debounce window the client should apply between
// keystrokes; the matcher itself never waits.
func suggestAddOns(c *gin.Context) {
	var req struct {
		Category models.CategoryKey `json:"category" binding:"required"`
		Comment  string             `json:"comment"`
		MinChars int                `json:"min_chars"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions := services.SuggestAddOns(req.Category, req.Comment, req.MinChars)
	if suggestions == nil {
		suggestions = []models.AddOn{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
		"debounce_ms": services.DebounceWindowMillis,
	})
}

// aggregatePayments merges parked drafts and the current draft into one
// billing preview, before anything is persisted
func aggregatePayments(c *gin.Context) {
	var req struct {
		PendingDrafts []models.BookingDraft `json:"pending_drafts"`
		CurrentDraft  *models.BookingDraft  `json:"current_draft"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": services.AggregatePayments(req.PendingDrafts, req.CurrentDraft),
	})
}
