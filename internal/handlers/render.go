package handlers

import (
	"github.com/gin-gonic/gin"
)

// respondData writes the {message, data} envelope used by most endpoints.
func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

// respondMessage writes a body carrying only a message.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
