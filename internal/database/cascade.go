package database

import (
	"vendor-tracker/internal/models"

	"gorm.io/gorm"
)

// DeleteVendor removes a vendor with its contacts, addresses and client links.
// Submissions keep their row; chain slots pointing at the vendor become NULL.
func DeleteVendor(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vendor_id = ?", id).Delete(&models.VendorContact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vendor_id = ?", id).Delete(&models.VendorAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vendor_id = ?", id).Delete(&models.ClientVendorLink{}).Error; err != nil {
			return err
		}
		for _, col := range []string{"vendor_id", "prime_vendor_id", "implementation_partner_id"} {
			if err := tx.Model(&models.Submission{}).
				Where(col+" = ?", id).
				Update(col, nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Vendor{}, id).Error
	})
}

// DeleteClient removes a client with its addresses and vendor links; submissions
// to the client lose their end client.
func DeleteClient(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientVendorLink{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Submission{}).
			Where("end_client_id = ?", id).
			Update("end_client_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, id).Error
	})
}

// DeleteConsultant removes a consultant together with address, education and submissions.
func DeleteConsultant(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("consultant_id = ?", id).Delete(&models.ConsultantEducation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("consultant_id = ?", id).Delete(&models.ConsultantAddress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("consultant_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Consultant{}, id).Error
	})
}
