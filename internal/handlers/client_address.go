package handlers

import (
	"errors"
	"net/http"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clientAddressPayload struct {
	AddrID        uint    `json:"addrid"`
	Client        uint    `json:"client"`
	ClientID      uint    `json:"client_id"`
	StreetAddress *string `json:"street_address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=100"`
	Country       *string `json:"country" binding:"omitempty,max=100"`
	Zipcode       *string `json:"zipcode" binding:"omitempty,max=20"`
	AddressType   *string `json:"address_type" binding:"omitempty,max=50"`
}

func (p clientAddressPayload) apply(a *models.ClientAddress) {
	if p.StreetAddress != nil {
		a.StreetAddress = trimmed(p.StreetAddress)
	}
	if p.City != nil {
		a.City = trimmed(p.City)
	}
	if p.State != nil {
		a.State = trimmed(p.State)
	}
	if p.Country != nil {
		a.Country = trimmed(p.Country)
	}
	if p.Zipcode != nil {
		a.Zipcode = trimmed(p.Zipcode)
	}
	if p.AddressType != nil {
		a.AddressType = trimmed(p.AddressType)
	}
}

func loadClientAddress(id uint) (models.ClientAddress, error) {
	var a models.ClientAddress
	err := database.DB.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, notFound("Address")
	}
	if err != nil {
		return a, internalError("load client address", err)
	}
	return a, nil
}

func AddClientAddress(c *gin.Context) {
	var p clientAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.Client == 0 {
		respondError(c, required("client"))
		return
	}
	if _, err := loadClient(p.Client); err != nil {
		respondError(c, err)
		return
	}

	addr := models.ClientAddress{ClientID: p.Client}
	p.apply(&addr)
	if err := database.DB.Create(&addr).Error; err != nil {
		respondError(c, internalError("create client address", err))
		return
	}

	audit(c, "client_address", addr.ID, "create", "Client address added")
	c.JSON(http.StatusCreated, addr)
}

func GetClientAddresses(c *gin.Context) {
	var p clientAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.ClientID == 0 {
		respondError(c, validationError("client_id is required"))
		return
	}

	addrs := []models.ClientAddress{}
	if err := database.DB.Where("client_id = ?", p.ClientID).
		Order("id asc").
		Find(&addrs).Error; err != nil {
		respondError(c, internalError("list client addresses", err))
		return
	}
	c.JSON(http.StatusOK, addrs)
}

func UpdateClientAddress(c *gin.Context) {
	var p clientAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.AddrID == 0 {
		respondError(c, validationError("addrid is required"))
		return
	}

	addr, err := loadClientAddress(p.AddrID)
	if err != nil {
		respondError(c, err)
		return
	}
	p.apply(&addr)
	if err := database.DB.Save(&addr).Error; err != nil {
		respondError(c, internalError("update client address", err))
		return
	}

	audit(c, "client_address", addr.ID, "update", "Client address updated")
	c.JSON(http.StatusOK, addr)
}

func DeleteClientAddress(c *gin.Context) {
	var p clientAddressPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.AddrID == 0 {
		respondError(c, validationError("addrid is required"))
		return
	}

	addr, err := loadClientAddress(p.AddrID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := database.DB.Delete(&addr).Error; err != nil {
		respondError(c, internalError("delete client address", err))
		return
	}

	audit(c, "client_address", addr.ID, "delete", "Client address deleted")
	respondMessage(c, http.StatusOK, "Address deleted successfully")
}
