package database

import (
	"vendor-tracker/internal/models"

	"github.com/rs/zerolog/log"
)

// CreateAuditLog records an action in the audit trail. Failures are logged, not returned:
// the audited operation has already been committed.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if userID != 0 {
		record.UserID = &userID
	}
	if err := DB.Create(&record).Error; err != nil {
		log.Warn().Err(err).
			Str("entity", entity).
			Uint("entity_id", entityID).
			Str("action", action).
			Msg("audit log write failed")
	}
}
