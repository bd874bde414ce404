package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				ErrorsTotal.WithLabelValues("panic").Inc()
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
