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

// vendorPayload serves create and partial update; nil means "not sent".
type vendorPayload struct {
	Name          *string              `json:"name" binding:"omitempty,max=255"`
	StreetAddress *string              `json:"street_address" binding:"omitempty,max=255"`
	City          *string              `json:"city" binding:"omitempty,max=100"`
	State         *string              `json:"state" binding:"omitempty,max=100"`
	Country       *string              `json:"country" binding:"omitempty,max=100"`
	Zipcode       *string              `json:"zipcode" binding:"omitempty,max=20"`
	Status        *models.VendorStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	Notes         *string              `json:"notes"`
}

func (p vendorPayload) apply(v *models.Vendor) {
	if p.Name != nil {
		v.Name = strings.TrimSpace(*p.Name)
	}
	if p.StreetAddress != nil {
		v.StreetAddress = trimmed(p.StreetAddress)
	}
	if p.City != nil {
		v.City = trimmed(p.City)
	}
	if p.State != nil {
		v.State = trimmed(p.State)
	}
	if p.Country != nil {
		v.Country = trimmed(p.Country)
	}
	if p.Zipcode != nil {
		v.Zipcode = trimmed(p.Zipcode)
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.Notes != nil {
		v.Notes = p.Notes
	}
}

func validateVendor(v models.Vendor) error {
	if v.Name == "" {
		return required("name")
	}
	if !v.Status.IsValid() {
		apiErr := validationError("Invalid request payload")
		apiErr.Fields = map[string]string{"status": "Must be one of: active inactive."}
		return apiErr
	}
	return nil
}

func vendorNameTaken(name string, exceptID uint) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Vendor{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func loadVendor(id uint) (models.Vendor, error) {
	var vendor models.Vendor
	if err := database.DB.First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vendor, notFound("Vendor")
		}
		return vendor, internalError("load vendor", err)
	}
	return vendor, nil
}

func AddVendor(c *gin.Context) {
	var p vendorPayload
	if !bindJSON(c, &p) {
		return
	}

	vendor := models.Vendor{Status: models.VendorActive}
	p.apply(&vendor)
	if err := validateVendor(vendor); err != nil {
		respondError(c, err)
		return
	}

	taken, err := vendorNameTaken(vendor.Name, 0)
	if err != nil {
		respondError(c, internalError("check vendor name", err))
		return
	}
	if taken {
		respondError(c, conflict("Vendor with this name already exists"))
		return
	}

	if err := database.DB.Create(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, conflict("Vendor with this name already exists"))
			return
		}
		respondError(c, internalError("create vendor", err))
		return
	}

	audit(c, "vendor", vendor.ID, "create", "Vendor created: "+vendor.Name)
	respondData(c, http.StatusCreated, "Vendor created successfully", vendor)
}

func GetVendors(c *gin.Context) {
	var vendors []models.Vendor
	if err := database.DB.Order("created_at desc, id desc").Find(&vendors).Error; err != nil {
		respondError(c, internalError("list vendors", err))
		return
	}
	respondData(c, http.StatusOK, "Vendors retrieved successfully", vendors)
}

func GetVendorByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	vendor, err := loadVendor(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor retrieved successfully", vendor)
}

// UpdateVendor serves both PUT and PATCH; only sent fields change.
func UpdateVendor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	vendor, err := loadVendor(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var p vendorPayload
	if !bindJSON(c, &p) {
		return
	}
	p.apply(&vendor)
	if err := validateVendor(vendor); err != nil {
		respondError(c, err)
		return
	}

	taken, err := vendorNameTaken(vendor.Name, vendor.ID)
	if err != nil {
		respondError(c, internalError("check vendor name", err))
		return
	}
	if taken {
		respondError(c, conflict("Vendor with this name already exists"))
		return
	}

	if err := database.DB.Omit("Contacts", "Addresses").Save(&vendor).Error; err != nil {
		respondError(c, err)
		return
	}

	audit(c, "vendor", vendor.ID, "update", "Vendor updated: "+vendor.Name)
	respondData(c, http.StatusOK, "Vendor updated successfully", vendor)
}

func DeleteVendor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	vendor, err := loadVendor(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := database.DeleteVendor(database.DB, vendor.ID); err != nil {
		respondError(c, internalError("delete vendor", err))
		return
	}

	audit(c, "vendor", vendor.ID, "delete", "Vendor deleted: "+vendor.Name)
	c.Status(http.StatusNoContent)
}

func VendorStats(c *gin.Context) {
	var vendors []models.Vendor
	if err := database.DB.Order("name asc").Find(&vendors).Error; err != nil {
		respondError(c, internalError("vendor stats", err))
		return
	}

	active := 0
	for _, v := range vendors {
		if v.Status == models.VendorActive {
			active++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"total_vendors":    len(vendors),
			"active_vendors":   active,
			"inactive_vendors": len(vendors) - active,
		},
		"vendors": vendors,
	})
}
