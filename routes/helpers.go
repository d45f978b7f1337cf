package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-engine-server/middleware"
	"booking-engine-server/services"
)

// ownerKeyFromContext builds the cart owner key from the identity middleware
// output: an authenticated user id wins, otherwise the session token header.
func ownerKeyFromContext(c *gin.Context) services.OwnerKey {
	if userID, exists := c.Get(middleware.ContextUserID); exists {
		id := userID.(uint)
		return services.OwnerKey{UserID: &id}
	}
	if token, exists := c.Get(middleware.ContextSessionToken); exists {
		return services.OwnerKey{SessionToken: token.(string)}
	}
	return services.OwnerKey{}
}

// respondError maps engine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartLimitExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cart limit exceeded",
			"message": "A cart holds at most 3 services",
		})
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cart is empty",
			"message": "Add at least one service before checking out",
		})
	case errors.Is(err, services.ErrMissingPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing payment method",
			"message": "A masked payment descriptor is required",
		})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
		})
	case errors.Is(err, services.ErrDecryptionFailed):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Gate code unreadable",
			"message": "The stored gate code could not be decrypted",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
