package models

import "time"

// LinkRole is how a vendor relates to a client.
type LinkRole string

const (
	RoleVendor                LinkRole = "Vendor"
	RolePrimeVendor           LinkRole = "Prime Vendor"
	RoleImplementationPartner LinkRole = "Implementation Partner"
)

var LinkRoles = []LinkRole{RoleVendor, RolePrimeVendor, RoleImplementationPartner}

func (r LinkRole) IsValid() bool {
	for _, v := range LinkRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ClientVendorLink attaches a vendor to a client; one row per (client, vendor, role).
type ClientVendorLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;uniqueIndex:idx_client_vendor_role" json:"client"`
	VendorID  uint      `gorm:"not null;uniqueIndex:idx_client_vendor_role" json:"-"`
	Role      LinkRole  `gorm:"type:varchar(50);not null;uniqueIndex:idx_client_vendor_role" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Vendor Vendor `json:"vendor"`
}
