package models

import "time"

type VendorResponse string

const (
	ResponseClientSubmitted VendorResponse = "ClientSubmitted"
	ResponseClientRejected  VendorResponse = "ClientRejected"
	ResponseClientSelected  VendorResponse = "ClientSelected"
)

func (r VendorResponse) IsValid() bool {
	switch r {
	case ResponseClientSubmitted, ResponseClientRejected, ResponseClientSelected:
		return true
	}
	return false
}

// Submission is one attempt to place a consultant at a client through a vendor chain.
// The chain (consultant, vendor, prime vendor, implementation partner, end client)
// is unique. database.CheckChain compares NULL slots as equal on every write; the
// composite index only backs that up for fully filled chains, so a SET NULL cascade
// may leave two rows with the same chain.
type Submission struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	ConsultantID            uint           `gorm:"not null;index;uniqueIndex:idx_submission_chain_slots,priority:1" json:"consultant"`
	SkillID                 *uint          `json:"skill"`
	VendorID                *uint          `gorm:"index;uniqueIndex:idx_submission_chain_slots,priority:2" json:"vendor"`
	PrimeVendorID           *uint          `gorm:"uniqueIndex:idx_submission_chain_slots,priority:3" json:"prime_vendor"`
	ImplementationPartnerID *uint          `gorm:"uniqueIndex:idx_submission_chain_slots,priority:4" json:"implementation_partner"`
	EndClientID             *uint          `gorm:"index;uniqueIndex:idx_submission_chain_slots,priority:5" json:"end_client"`
	MarketerID              *uint          `gorm:"index" json:"marketer"`
	SubmissionDate          time.Time      `gorm:"not null;index" json:"submission_date"`
	Comments                *string        `gorm:"type:text" json:"comments"`
	VendorResponse          VendorResponse `gorm:"type:varchar(50);not null;default:ClientSubmitted" json:"vendor_response"`
	ResumePassedToClient    bool           `gorm:"not null;default:false" json:"resume_passed_to_client"`
	IsDuplicate             bool           `gorm:"not null;default:false" json:"is_duplicate"`

	Consultant            Consultant `gorm:"foreignKey:ConsultantID" json:"-"`
	Skill                 *Skill     `gorm:"foreignKey:SkillID" json:"-"`
	Vendor                *Vendor    `gorm:"foreignKey:VendorID" json:"-"`
	PrimeVendor           *Vendor    `gorm:"foreignKey:PrimeVendorID" json:"-"`
	ImplementationPartner *Vendor    `gorm:"foreignKey:ImplementationPartnerID" json:"-"`
	EndClient             *Client    `gorm:"foreignKey:EndClientID" json:"-"`
	Marketer              *Marketer  `gorm:"foreignKey:MarketerID" json:"-"`
}

// Chain is the identity of a placement attempt.
type Chain struct {
	ConsultantID            uint
	VendorID                *uint
	PrimeVendorID           *uint
	ImplementationPartnerID *uint
	EndClientID             *uint
}

func (s Submission) Chain() Chain {
	return Chain{
		ConsultantID:            s.ConsultantID,
		VendorID:                s.VendorID,
		PrimeVendorID:           s.PrimeVendorID,
		ImplementationPartnerID: s.ImplementationPartnerID,
		EndClientID:             s.EndClientID,
	}
}
