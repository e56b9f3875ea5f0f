package database

import (
	"errors"

	"vendor-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadConsultant fetches a consultant with address and education.
func LoadConsultant(db *gorm.DB, id uint) (models.Consultant, error) {
	var c models.Consultant
	err := db.Preload("Address").
		Preload("Education", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&c, id).Error
	return c, err
}

// EmailTaken compares case-insensitively; exceptID 0 checks every row.
func EmailTaken(db *gorm.DB, email string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Consultant{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

func SSNTaken(db *gorm.DB, ssn string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Consultant{}).
		Where("ssn = ? AND id <> ?", ssn, exceptID).
		Count(&count).Error
	return count > 0, err
}

// CreateConsultant writes the consultant, its address and education in one transaction.
func CreateConsultant(db *gorm.DB, c *models.Consultant) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		if c.Address != nil {
			c.Address.ConsultantID = c.ID
			if err := tx.Create(c.Address).Error; err != nil {
				return err
			}
		}
		if len(c.Education) > 0 {
			for i := range c.Education {
				c.Education[i].ConsultantID = c.ID
			}
			if err := tx.Create(&c.Education).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateConsultant saves the scalar fields, upserts addr when non-nil and
// replaces all education rows when edu is non-empty.
func UpdateConsultant(db *gorm.DB, c *models.Consultant, addr *models.ConsultantAddress, edu []models.ConsultantEducation) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}

		if addr != nil {
			var existing models.ConsultantAddress
			err := tx.Where("consultant_id = ?", c.ID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				addr.ID = 0
			case err != nil:
				return err
			default:
				addr.ID = existing.ID
			}
			addr.ConsultantID = c.ID
			if err := tx.Save(addr).Error; err != nil {
				return err
			}
		}

		if len(edu) > 0 {
			if err := tx.Where("consultant_id = ?", c.ID).Delete(&models.ConsultantEducation{}).Error; err != nil {
				return err
			}
			for i := range edu {
				edu[i].ID = 0
				edu[i].ConsultantID = c.ID
			}
			if err := tx.Create(&edu).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
