package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elisa-a-v/courtlistener/internal/config"
)

// Maintenance returns a middleware that short-circuits every request with a
// 503 while maintenance mode is enabled. Staff users bypass it when
// AllowStaff is set. Callers should only install the middleware when
// maintenance mode is enabled, so the check costs nothing in normal
// operation; the router does exactly that.
//
// The maintenance response must never be cached, or clients would keep
// seeing it after the flag is cleared.
func Maintenance(cfg config.MaintenanceConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AllowStaff && isStaff(c) {
			c.Next()
			return
		}

		c.Header("Cache-Control", "max-age=0, no-cache, no-store, must-revalidate, private")
		c.Header("Expires", "0")
		c.Header("Retry-After", "3600")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error": "The site is temporarily down for maintenance.",
		})
	}
}

// isStaff reports whether the authenticated user is staff. Authentication
// middleware upstream sets the flag.
func isStaff(c *gin.Context) bool {
	v, ok := c.Get("is_staff")
	if !ok {
		return false
	}
	staff, _ := v.(bool)
	return staff
}
