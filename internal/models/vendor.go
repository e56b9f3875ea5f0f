package models

import "time"

type VendorStatus string

const (
	VendorActive   VendorStatus = "active"
	VendorInactive VendorStatus = "inactive"
)

func (s VendorStatus) IsValid() bool {
	return s == VendorActive || s == VendorInactive
}

type Vendor struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"size:255;not null;uniqueIndex" json:"name"`
	StreetAddress *string      `gorm:"size:255" json:"street_address"`
	City          *string      `gorm:"size:100" json:"city"`
	State         *string      `gorm:"size:100" json:"state"`
	Country       *string      `gorm:"size:100" json:"country"`
	Zipcode       *string      `gorm:"size:20" json:"zipcode"`
	Status        VendorStatus `gorm:"type:varchar(10);not null;default:active" json:"status"`
	Notes         *string      `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Contacts  []VendorContact `json:"-"`
	Addresses []VendorAddress `json:"-"`
}

// VendorContact is a person on the vendor side, usually a recruiter or account manager.
type VendorContact struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VendorID    uint      `gorm:"not null;index" json:"vendor"`
	FullName    string    `gorm:"size:255;not null" json:"full_name"`
	Designation *string   `gorm:"size:100" json:"designation"`
	Email       string    `gorm:"size:254;not null" json:"email"`
	Phone       *string   `gorm:"size:20" json:"phone"`
	IsPrimary   bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
}

type VendorAddress struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	VendorID      uint      `gorm:"not null;index" json:"vendor"`
	Type          *string   `gorm:"size:50" json:"type"` // Billing, Shipping...
	StreetAddress string    `gorm:"size:255;not null" json:"street_address"`
	City          string    `gorm:"size:100;not null" json:"city"`
	State         string    `gorm:"size:100;not null" json:"state"`
	Country       string    `gorm:"size:100;not null" json:"country"`
	Zipcode       *string   `gorm:"size:20" json:"zipcode"`
	IsPrimary     bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`
}
