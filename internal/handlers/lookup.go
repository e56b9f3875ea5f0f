package handlers

import (
	"context"
	"net/http"
	"time"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

func GetStates(c *gin.Context) {
	c.JSON(http.StatusOK, models.States())
}

// Health pings the database.
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dbStatus = "unavailable"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": dbStatus})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": dbStatus})
}

func Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
