package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SyncKeyMiddleware guards the scheduled-sync endpoint with the X-Sync-Key
// header. An empty configured key disables the endpoint.
func SyncKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "SCHEDULED_SYNC_DISABLED", "message": "Scheduled sync is not configured"}})
			return
		}
		got := c.GetHeader("X-Sync-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "INVALID_SYNC_KEY", "message": "Invalid or missing sync key"}})
			return
		}
		c.Next()
	}
}
