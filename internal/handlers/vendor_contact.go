package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type contactPayload struct {
	VendorID    uint    `json:"vendor_id"`
	ContactID   uint    `json:"contact_id"`
	FullName    *string `json:"full_name" binding:"omitempty,max=255"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	IsPrimary   *bool   `json:"is_primary"`
}

func (p contactPayload) apply(ct *models.VendorContact) {
	if p.FullName != nil {
		ct.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Designation != nil {
		ct.Designation = trimmed(p.Designation)
	}
	if p.Email != nil {
		ct.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		ct.Phone = trimmed(p.Phone)
	}
	if p.IsPrimary != nil {
		ct.IsPrimary = *p.IsPrimary
	}
}

func validateContact(ct models.VendorContact) error {
	var missing []string
	if ct.FullName == "" {
		missing = append(missing, "full_name")
	}
	if ct.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return required(missing...)
	}
	return nil
}

// loadContact resolves a contact of the given vendor.
func loadContact(vendorID, contactID uint) (models.VendorContact, error) {
	var ct models.VendorContact
	err := database.DB.Where("id = ? AND vendor_id = ?", contactID, vendorID).First(&ct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ct, notFound("Contact")
	}
	if err != nil {
		return ct, internalError("load contact", err)
	}
	return ct, nil
}

func AddVendorContact(c *gin.Context) {
	vendorID, err := parseIDParam(c, "vendor_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := loadVendor(vendorID); err != nil {
		respondError(c, err)
		return
	}

	var p contactPayload
	if !bindJSON(c, &p) {
		return
	}
	ct := models.VendorContact{VendorID: vendorID}
	p.apply(&ct)
	if err := validateContact(ct); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Create(&ct).Error; err != nil {
		respondError(c, internalError("create contact", err))
		return
	}

	audit(c, "vendor_contact", ct.ID, "create", "Contact added: "+ct.FullName)
	respondData(c, http.StatusCreated, "Contact added successfully", ct)
}

func GetVendorContacts(c *gin.Context) {
	vendorID, err := parseIDParam(c, "vendor_id")
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := loadVendor(vendorID); err != nil {
		respondError(c, err)
		return
	}

	var contacts []models.VendorContact
	if err := database.DB.Where("vendor_id = ?", vendorID).
		Order("created_at desc, id desc").
		Find(&contacts).Error; err != nil {
		respondError(c, internalError("list contacts", err))
		return
	}
	respondData(c, http.StatusOK, "Contacts retrieved successfully", contacts)
}

func UpdateVendorContact(c *gin.Context) {
	var p contactPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.VendorID == 0 || p.ContactID == 0 {
		respondError(c, required("vendor_id", "contact_id"))
		return
	}

	ct, err := loadContact(p.VendorID, p.ContactID)
	if err != nil {
		respondError(c, err)
		return
	}
	p.apply(&ct)
	if err := validateContact(ct); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Save(&ct).Error; err != nil {
		respondError(c, internalError("update contact", err))
		return
	}

	audit(c, "vendor_contact", ct.ID, "update", "Contact updated: "+ct.FullName)
	respondData(c, http.StatusOK, "Contact updated successfully", ct)
}

func DeleteVendorContact(c *gin.Context) {
	var p contactPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.VendorID == 0 || p.ContactID == 0 {
		respondError(c, required("vendor_id", "contact_id"))
		return
	}

	ct, err := loadContact(p.VendorID, p.ContactID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := database.DB.Delete(&ct).Error; err != nil {
		respondError(c, internalError("delete contact", err))
		return
	}

	audit(c, "vendor_contact", ct.ID, "delete", "Contact deleted: "+ct.FullName)
	c.Status(http.StatusNoContent)
}
