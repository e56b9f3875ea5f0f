package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type attachPayload struct {
	VendorID uint            `json:"vendor_id" binding:"required,gt=0"`
	Role     models.LinkRole `json:"role" binding:"required,oneof='Vendor' 'Prime Vendor' 'Implementation Partner'"`
}

// AttachVendor is get-or-create on (client, vendor, role): 201 when a link
// is written, 200 when it already existed.
func AttachVendor(c *gin.Context) {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := loadClient(clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	var p attachPayload
	if !bindJSON(c, &p) {
		return
	}
	vendor, err := loadVendor(p.VendorID)
	if err != nil {
		respondError(c, err)
		return
	}

	link := models.ClientVendorLink{ClientID: client.ID, VendorID: vendor.ID, Role: p.Role}
	res := database.DB.Omit("Vendor").
		Where("client_id = ? AND vendor_id = ? AND role = ?", client.ID, vendor.ID, p.Role).
		FirstOrCreate(&link)
	created := res.RowsAffected > 0
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		// lost a race with an identical attach
		created = false
		res = database.DB.Where("client_id = ? AND vendor_id = ? AND role = ?", client.ID, vendor.ID, p.Role).
			First(&link)
	}
	if res.Error != nil {
		respondError(c, internalError("attach vendor", res.Error))
		return
	}

	link.Vendor = vendor
	if !created {
		respondData(c, http.StatusOK, "Vendor already attached to this client with the same role", link)
		return
	}

	audit(c, "client", client.ID, "attach",
		fmt.Sprintf("Vendor %s attached as %s", vendor.Name, link.Role))
	c.JSON(http.StatusCreated, link)
}

func GetVendorsForClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := loadClient(clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	links := []models.ClientVendorLink{}
	if err := database.DB.Preload("Vendor").
		Where("client_id = ?", client.ID).
		Order("created_at desc, id desc").
		Find(&links).Error; err != nil {
		respondError(c, internalError("list client vendors", err))
		return
	}

	// flat lists each vendor once, at the position of its newest link
	if c.Query("flat") == "true" {
		seen := make(map[uint]bool, len(links))
		vendors := make([]models.Vendor, 0, len(links))
		for _, l := range links {
			if seen[l.VendorID] {
				continue
			}
			seen[l.VendorID] = true
			vendors = append(vendors, l.Vendor)
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "Vendors retrieved successfully",
			"client_id": client.ID,
			"count":     len(vendors),
			"data":      vendors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Client vendors retrieved successfully",
		"client_id": client.ID,
		"count":     len(links),
		"data":      links,
	})
}

// DetachVendorFromClient removes the oldest link between the two, whatever its role.
func DetachVendorFromClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		respondError(c, err)
		return
	}
	vendorID, err := parseIDParam(c, "vendor_id")
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := loadClient(clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	vendor, err := loadVendor(vendorID)
	if err != nil {
		respondError(c, err)
		return
	}

	var link models.ClientVendorLink
	err = database.DB.Where("client_id = ? AND vendor_id = ?", client.ID, vendor.ID).
		Order("id asc").
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, validationError("Vendor not attached to this client"))
		return
	}
	if err != nil {
		respondError(c, internalError("detach vendor", err))
		return
	}

	if err := database.DB.Delete(&link).Error; err != nil {
		respondError(c, internalError("detach vendor", err))
		return
	}

	audit(c, "client", client.ID, "detach",
		fmt.Sprintf("Vendor %s detached (%s)", vendor.Name, link.Role))
	respondMessage(c, http.StatusOK, "Vendor detached successfully")
}
