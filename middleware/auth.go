package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-engine-server/utils"
)

// Context keys set by the identity middleware.
const (
	ContextUserID       = "user_id"
	ContextSessionToken = "session_token"
)

// SessionTokenHeader carries the anonymous cart owner token, the
// cookie-equivalent the client persists between requests.
const SessionTokenHeader = "X-Session-Token"

// IdentityMiddleware resolves the request identity without requiring one.
// A valid Bearer token yields a user id; otherwise the session token header
// is passed through. Anonymous requests proceed — the cart store mints a
// session token for them on first write.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid token format",
					"message": "Token must be in format: Bearer <token>",
				})
				c.Abort()
				return
			}

			userID, err := utils.ValidateToken(tokenString)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid token",
					"message": "Token is invalid or expired",
				})
				c.Abort()
				return
			}
			c.Set(ContextUserID, userID)
			c.Next()
			return
		}

		if token := c.GetHeader(SessionTokenHeader); token != "" {
			c.Set(ContextSessionToken, token)
		}
		c.Next()
	}
}

// RequireUser aborts requests that did not authenticate as a user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
