package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every incoming request before it is handled
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("Request %s %s from %s", c.Request.Method, c.Request.URL.Path, c.Request.UserAgent())
		c.Next()
	}
}
