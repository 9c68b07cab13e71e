package response

import "github.com/gin-gonic/gin"

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func ValidationError(c *gin.Context, statusCode int, message string, fields map[string]string) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"errors":  fields,
	})
}
