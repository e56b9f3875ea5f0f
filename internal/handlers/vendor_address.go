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

type vendorAddressPayload struct {
	VendorID      uint    `json:"vendor_id"`
	AddressID     uint    `json:"address_id"`
	Type          *string `json:"type" binding:"omitempty,max=50"`
	StreetAddress *string `json:"street_address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=100"`
	Country       *string `json:"country" binding:"omitempty,max=100"`
	Zipcode       *string `json:"zipcode" binding:"omitempty,max=20"`
	IsPrimary     *bool   `json:"is_primary"`
}

func (p vendorAddressPayload) apply(a *models.VendorAddress) {
	if p.Type != nil {
		a.Type = trimmed(p.Type)
	}
	if p.StreetAddress != nil {
		a.StreetAddress = strings.TrimSpace(*p.StreetAddress)
	}
	if p.City != nil {
		a.City = strings.TrimSpace(*p.City)
	}
	if p.State != nil {
		a.State = strings.TrimSpace(*p.State)
	}
	if p.Country != nil {
		a.Country = strings.TrimSpace(*p.Country)
	}
	if p.Zipcode != nil {
		a.Zipcode = trimmed(p.Zipcode)
	}
	if p.IsPrimary != nil {
		a.IsPrimary = *p.IsPrimary
	}
}

func validateVendorAddress(a models.VendorAddress) error {
	var missing []string
	for name, v := range map[string]string{
		"street_address": a.StreetAddress,
		"city":           a.City,
		"state":          a.State,
		"country":        a.Country,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return required(missing...)
	}
	return nil
}

func loadVendorAddress(vendorID, addressID uint) (models.VendorAddress, error) {
	var a models.VendorAddress
	err := database.DB.Where("id = ? AND vendor_id = ?", addressID, vendorID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, notFound("Address")
	}
	if err != nil {
		return a, internalError("load vendor address", err)
	}
	return a, nil
}

func AddVendorAddress(c *gin.Context) {
	var p vendorAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.VendorID == 0 {
		respondError(c, required("vendor_id"))
		return
	}
	if _, err := loadVendor(p.VendorID); err != nil {
		respondError(c, err)
		return
	}

	addr := models.VendorAddress{VendorID: p.VendorID}
	p.apply(&addr)
	if err := validateVendorAddress(addr); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Create(&addr).Error; err != nil {
		respondError(c, internalError("create vendor address", err))
		return
	}

	audit(c, "vendor_address", addr.ID, "create", "Vendor address added")
	respondData(c, http.StatusCreated, "Address added successfully", addr)
}

func GetVendorAddresses(c *gin.Context) {
	var p vendorAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.VendorID == 0 {
		respondError(c, required("vendor_id"))
		return
	}
	if _, err := loadVendor(p.VendorID); err != nil {
		respondError(c, err)
		return
	}

	var addrs []models.VendorAddress
	if err := database.DB.Where("vendor_id = ?", p.VendorID).
		Order("created_at desc, id desc").
		Find(&addrs).Error; err != nil {
		respondError(c, internalError("list vendor addresses", err))
		return
	}
	respondData(c, http.StatusOK, "Addresses retrieved successfully", addrs)
}

func UpdateVendorAddress(c *gin.Context) {
	var p vendorAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.VendorID == 0 || p.AddressID == 0 {
		respondError(c, required("vendor_id", "address_id"))
		return
	}

	addr, err := loadVendorAddress(p.VendorID, p.AddressID)
	if err != nil {
		respondError(c, err)
		return
	}
	p.apply(&addr)
	if err := validateVendorAddress(addr); err != nil {
		respondError(c, err)
		return
	}
	if err := database.DB.Save(&addr).Error; err != nil {
		respondError(c, internalError("update vendor address", err))
		return
	}

	audit(c, "vendor_address", addr.ID, "update", "Vendor address updated")
	respondData(c, http.StatusOK, "Address updated successfully", addr)
}

func DeleteVendorAddress(c *gin.Context) {
	var p vendorAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.VendorID == 0 || p.AddressID == 0 {
		respondError(c, required("vendor_id", "address_id"))
		return
	}

	addr, err := loadVendorAddress(p.VendorID, p.AddressID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := database.DB.Delete(&addr).Error; err != nil {
		respondError(c, internalError("delete vendor address", err))
		return
	}

	audit(c, "vendor_address", addr.ID, "delete", "Vendor address deleted")
	c.Status(http.StatusNoContent)
}
