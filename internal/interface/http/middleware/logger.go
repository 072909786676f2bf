package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with an id, echoes it in X-Request-ID and
// logs method, path, status and latency. Bodies are never logged: create and
// login payloads carry plaintext passwords.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = " | " + c.Errors.String()
		}

		log.Printf("%s | %3d | %13v | %15s | %-7s %s%s",
			requestID,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		if latency > 3*time.Second {
			log.Printf("slow request: %s %s took %v", c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
