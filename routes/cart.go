package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-engine-server/models"
	"booking-engine-server/services"
)

// RegisterCartRoutes registers all cart-related routes
func RegisterCartRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	{
		cart.GET("", getCart)
		cart.POST("/items", addCartItem)
		cart.PUT("/items/:id", updateCartItem)
		cart.DELETE("/items/:id", removeCartItem)
		cart.DELETE("", clearCart)
	}
}

// getCart returns the owner's cart with its items
func getCart(c *gin.Context) {
	cartService := services.NewCartService()

	cart, err := cartService.GetWithItems(ownerKeyFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart,
	})
}

// addCartItem prices the selection and adds it to the owner's cart. When the
// store mints a session token, the response carries it for the client to
// persist.
func addCartItem(c *gin.Context) {
	var req models.CartItemCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartService := services.NewCartService()
	result, err := cartService.AddItem(ownerKeyFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"success": true,
		"item":    result.Item,
		"cart":    result.Cart,
	}
	if result.MintedToken != "" {
		response["session_token"] = result.MintedToken
	}

	c.JSON(http.StatusCreated, response)
}

// updateCartItem applies a partial update to a cart item
func updateCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req models.CartItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cartService := services.NewCartService()
	item, err := cartService.UpdateItem(ownerKeyFromContext(c), uint(itemID), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
	})
}

// removeCartItem deletes a cart item and its gate code
func removeCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	cartService := services.NewCartService()
	if err := cartService.RemoveItem(ownerKeyFromContext(c), uint(itemID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item removed from cart",
	})
}

// clearCart removes every item from the owner's cart
func clearCart(c *gin.Context) {
	cartService := services.NewCartService()
	if err := cartService.Clear(ownerKeyFromContext(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}
