package handlers

import (
	"net/http"
	"strconv"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns the latest 200 entries, optionally for one entity.
func ListAuditLogs(c *gin.Context) {
	q := database.DB.Preload("User")
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			respondError(c, validationError("Invalid entity_id"))
			return
		}
		q = q.Where("entity_id = ?", id)
	}

	logs := []models.AuditLog{}
	if err := q.Order("created_at desc, id desc").Limit(200).Find(&logs).Error; err != nil {
		respondError(c, internalError("list audit logs", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
}
