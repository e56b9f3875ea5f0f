package handlers

import (
	"strconv"
	"strings"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, validationError("Invalid " + name)
	}
	return uint(id), nil
}

// bindJSON binds the body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, fieldErrors(err))
		return false
	}
	return true
}

func required(fields ...string) *APIError {
	apiErr := validationError("Invalid request payload")
	apiErr.Fields = make(map[string]string, len(fields))
	for _, f := range fields {
		apiErr.Fields[f] = "This field is required."
	}
	return apiErr
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// trimmed returns nil for nil input and a trimmed copy otherwise.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func audit(c *gin.Context, entity string, id uint, action, details string) {
	database.CreateAuditLog(middleware.UserID(c), entity, id, action, details)
}
