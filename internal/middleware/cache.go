package middleware

import "github.com/gin-gonic/gin"

// NoStore marks responses as uncacheable. Roster rows change with every
// mutation, so a cached table would be stale.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
