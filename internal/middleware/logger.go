package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request outcome and recovers from panics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf(
					"request_panic method=%s path=%s client_ip=%s error=%v stack=%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					recovered,
					string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
				})
				return
			}

			status := c.Writer.Status()
			entry := fmt.Sprintf(
				"request method=%s path=%s status=%d client_ip=%s user_id=%s latency=%s",
				c.Request.Method,
				c.Request.URL.Path,
				status,
				c.ClientIP(),
				c.GetString(ContextUserID),
				time.Since(start),
			)
			if status >= http.StatusInternalServerError {
				for _, err := range c.Errors {
					entry += fmt.Sprintf(" error=%q", err.Error())
				}
			}
			log.Println(entry)
		}()

		c.Next()
	}
}
