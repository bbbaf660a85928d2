package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahand-dev/bazaar-api/config"
)

// ValidateAPIKey guards the admin surface with a static X-API-KEY header.
func ValidateAPIKey(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")
		if cfg.AdminAPIKey == "" || apiKey != cfg.AdminAPIKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
