package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-engine-server/models"
	"booking-engine-server/services"
)

// RegisterCheckoutRoutes registers checkout and order routes
func RegisterCheckoutRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", checkout)

	orders := router.Group("/orders")
	{
		orders.GET("", getOrders)
		orders.GET("/:id", getOrder)
		orders.PATCH("/:id/status", updateOrderStatus)
		orders.GET("/:id/items/:itemId/gate-code", revealGateCode)
	}
}

// checkout converts the owner's cart into an order in one transaction
func checkout(c *gin.Context) {
	var req models.PaymentDescriptor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkoutService := services.NewCheckoutService()
	order, err := checkoutService.Checkout(ownerKeyFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("✅ Order %s created with %d items, total %.2f", order.OrderNumber, len(order.Items), order.TotalAmount)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

// getOrders lists the owner's orders
func getOrders(c *gin.Context) {
	checkoutService := services.NewCheckoutService()
	orders, err := checkoutService.GetOrders(ownerKeyFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// getOrder returns one of the owner's orders
func getOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	checkoutService := services.NewCheckoutService()
	order, err := checkoutService.GetOrder(ownerKeyFromContext(c), uint(orderID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// revealGateCode decrypts the gate code for one of the owner's order items.
// The plaintext goes straight into the response and is never logged.
func revealGateCode(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	checkoutService := services.NewCheckoutService()
	gateCode, err := checkoutService.RevealGateCode(ownerKeyFromContext(c), uint(orderID), uint(itemID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"gate_code": gateCode,
	})
}

// updateOrderStatus applies an allowed status transition
func updateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkoutService := services.NewCheckoutService()
	order, err := checkoutService.UpdateOrderStatus(ownerKeyFromContext(c), uint(orderID), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
