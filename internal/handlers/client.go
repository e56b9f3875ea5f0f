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

// clientPayload serves create and partial update. domain_name is never read:
// it is derived from domain_id.
type clientPayload struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	DomainID      *int    `json:"domain_id"`
	StreetAddress *string `json:"street_address" binding:"omitempty,max=255"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	State         *string `json:"state" binding:"omitempty,max=100"`
	Country       *string `json:"country" binding:"omitempty,max=100"`
	Zipcode       *string `json:"zipcode" binding:"omitempty,max=20"`
	ContactName   *string `json:"contact_name" binding:"omitempty,max=255"`
	ContactEmail  *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone" binding:"omitempty,max=20"`
}

func (p clientPayload) apply(cl *models.Client) error {
	if p.DomainID != nil {
		d, ok := models.DomainByID(*p.DomainID)
		if !ok {
			apiErr := validationError("Invalid domain_id")
			apiErr.Fields = map[string]string{"domain_id": "Invalid domain_id"}
			return apiErr
		}
		cl.DomainID = &d.ID
		cl.DomainName = &d.Name
	}
	if p.Name != nil {
		cl.Name = strings.TrimSpace(*p.Name)
	}
	if p.StreetAddress != nil {
		cl.StreetAddress = trimmed(p.StreetAddress)
	}
	if p.City != nil {
		cl.City = trimmed(p.City)
	}
	if p.State != nil {
		cl.State = trimmed(p.State)
	}
	if p.Country != nil {
		cl.Country = trimmed(p.Country)
	}
	if p.Zipcode != nil {
		cl.Zipcode = trimmed(p.Zipcode)
	}
	if p.ContactName != nil {
		cl.ContactName = trimmed(p.ContactName)
	}
	if p.ContactEmail != nil {
		cl.ContactEmail = trimmed(p.ContactEmail)
	}
	if p.ContactPhone != nil {
		cl.ContactPhone = trimmed(p.ContactPhone)
	}
	if cl.Name == "" {
		return required("name")
	}
	return nil
}

func loadClient(id uint) (models.Client, error) {
	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return client, notFound("Client")
		}
		return client, internalError("load client", err)
	}
	return client, nil
}

func GetDomains(c *gin.Context) {
	c.JSON(http.StatusOK, models.Domains())
}

func AddClient(c *gin.Context) {
	var p clientPayload
	if !bindJSON(c, &p) {
		return
	}

	var client models.Client
	if err := p.apply(&client); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Create(&client).Error; err != nil {
		respondError(c, internalError("create client", err))
		return
	}

	audit(c, "client", client.ID, "create", "Client created: "+client.Name)
	respondData(c, http.StatusCreated, "Client created successfully", client)
}

func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := database.DB.Order("created_at desc, id desc").Find(&clients).Error; err != nil {
		respondError(c, internalError("list clients", err))
		return
	}
	respondData(c, http.StatusOK, "Clients retrieved successfully", clients)
}

// UpdateClient serves both PUT and PATCH. A new domain_id re-snapshots domain_name.
func UpdateClient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := loadClient(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var p clientPayload
	if !bindJSON(c, &p) {
		return
	}
	if err := p.apply(&client); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Omit("Addresses", "VendorLinks").Save(&client).Error; err != nil {
		respondError(c, internalError("update client", err))
		return
	}

	audit(c, "client", client.ID, "update", "Client updated: "+client.Name)
	respondData(c, http.StatusOK, "Client updated successfully", client)
}

func DeleteClient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := loadClient(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := database.DeleteClient(database.DB, client.ID); err != nil {
		respondError(c, internalError("delete client", err))
		return
	}

	audit(c, "client", client.ID, "delete", "Client deleted: "+client.Name)
	c.Status(http.StatusNoContent)
}

type clientSearch struct {
	City       string `json:"city"`
	State      string `json:"state"`
	VendorID   *uint  `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
}

func like(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// SearchClient ANDs every filter sent; vendor filters go through the links.
func SearchClient(c *gin.Context) {
	var p clientSearch
	if !bindJSON(c, &p) {
		return
	}

	q := database.DB.Model(&models.Client{})
	if strings.TrimSpace(p.City) != "" {
		q = q.Where("LOWER(city) LIKE ?", like(p.City))
	}
	if strings.TrimSpace(p.State) != "" {
		q = q.Where("LOWER(state) LIKE ?", like(p.State))
	}
	if p.VendorID != nil || strings.TrimSpace(p.VendorName) != "" {
		linked := database.DB.Model(&models.ClientVendorLink{}).
			Select("client_vendor_links.client_id").
			Joins("JOIN vendors ON vendors.id = client_vendor_links.vendor_id")
		if p.VendorID != nil {
			linked = linked.Where("client_vendor_links.vendor_id = ?", *p.VendorID)
		}
		if strings.TrimSpace(p.VendorName) != "" {
			linked = linked.Where("LOWER(vendors.name) LIKE ?", like(p.VendorName))
		}
		q = q.Where("id IN (?)", linked)
	}

	var clients []models.Client
	if err := q.Order("created_at desc, id desc").Find(&clients).Error; err != nil {
		respondError(c, internalError("search clients", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(clients), "results": clients})
}

func ClientStats(c *gin.Context) {
	var total, withVendors int64
	if err := database.DB.Model(&models.Client{}).Count(&total).Error; err != nil {
		respondError(c, internalError("client stats", err))
		return
	}
	linked := database.DB.Model(&models.ClientVendorLink{}).Select("client_id")
	if err := database.DB.Model(&models.Client{}).
		Where("id IN (?)", linked).
		Count(&withVendors).Error; err != nil {
		respondError(c, internalError("client stats", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clients":           total,
		"clients_with_vendors":    withVendors,
		"clients_without_vendors": total - withVendors,
	})
}
