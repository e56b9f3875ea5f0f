package models

import "time"

type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	DomainID      *int      `json:"domain_id"`
	DomainName    *string   `gorm:"size:255" json:"domain_name"` // snapshot taken on write
	StreetAddress *string   `gorm:"size:255" json:"street_address"`
	City          *string   `gorm:"size:100" json:"city"`
	State         *string   `gorm:"size:100" json:"state"`
	Country       *string   `gorm:"size:100" json:"country"`
	Zipcode       *string   `gorm:"size:20" json:"zipcode"`
	ContactName   *string   `gorm:"size:255" json:"contact_name"`
	ContactEmail  *string   `gorm:"size:254" json:"contact_email"`
	ContactPhone  *string   `gorm:"size:20" json:"contact_phone"`
	CreatedAt     time.Time `json:"created_at"`

	Addresses   []ClientAddress    `json:"-"`
	VendorLinks []ClientVendorLink `json:"-"`
}

type ClientAddress struct {
	ID            uint      `gorm:"primaryKey" json:"addrid"`
	ClientID      uint      `gorm:"not null;index" json:"client"`
	StreetAddress *string   `gorm:"size:255" json:"street_address"`
	City          *string   `gorm:"size:100" json:"city"`
	State         *string   `gorm:"size:100" json:"state"`
	Country       *string   `gorm:"size:100" json:"country"`
	Zipcode       *string   `gorm:"size:20" json:"zipcode"`
	AddressType   *string   `gorm:"size:50" json:"address_type"` // HQ, Branch, Billing
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
