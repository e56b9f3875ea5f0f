package handlers

import (
	"errors"
	"net/http"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clientDetail struct {
	models.Client
	Addresses []models.ClientAddress    `json:"addresses"`
	Vendors   []models.ClientVendorLink `json:"vendors"`
}

// GetClientByID returns the client with its addresses and vendor links.
func GetClientByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var client models.Client
	if err := database.DB.
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("VendorLinks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }).
		Preload("VendorLinks.Vendor").
		First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFound("Client"))
			return
		}
		respondError(c, internalError("load client", err))
		return
	}

	detail := clientDetail{
		Client:    client,
		Addresses: client.Addresses,
		Vendors:   client.VendorLinks,
	}
	if detail.Addresses == nil {
		detail.Addresses = []models.ClientAddress{}
	}
	if detail.Vendors == nil {
		detail.Vendors = []models.ClientVendorLink{}
	}
	respondData(c, http.StatusOK, "Client retrieved successfully", detail)
}
