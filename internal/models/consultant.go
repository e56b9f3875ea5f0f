package models

import "time"

type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

type Visa struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

type Consultant struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	FirstName        string    `gorm:"size:100;not null" json:"first_name"`
	MiddleName       *string   `gorm:"size:100" json:"middle_name"`
	LastName         string    `gorm:"size:100;not null" json:"last_name"`
	DOB              Date      `gorm:"type:date;not null" json:"dob"`
	SSN              string    `gorm:"size:15;not null;uniqueIndex" json:"ssn"`
	PhoneNumber      string    `gorm:"size:15;not null" json:"phone_number"`
	OtherPhoneNumber *string   `gorm:"size:15" json:"other_phone_number"`
	SkypeID          *string   `gorm:"size:100" json:"skype_id"`
	SkillID          *uint     `json:"skill"`
	ExpectedRate     float64   `gorm:"type:decimal(10,2);not null" json:"expected_rate"`
	VisaStatusID     *uint     `json:"visa_status"`
	PassportNumber   *string   `gorm:"size:20" json:"passport_number"`
	Exp              bool      `gorm:"not null;default:false" json:"exp"`
	GK               bool      `gorm:"not null;default:false" json:"gk"`
	GKMoveInDate     *Date     `gorm:"type:date" json:"gk_move_in_date"`
	USEntryDate      *Date     `gorm:"type:date" json:"us_entry_date"`
	Recruiter        int       `gorm:"not null" json:"recruiter"`
	Active           bool      `gorm:"not null" json:"active"`
	StreetAddress    *string   `gorm:"size:255" json:"street_address"`
	PrefLocation     *string   `gorm:"size:100" json:"pref_location"`
	Priority         int       `gorm:"not null;default:0" json:"priority"`
	CreatedOn        time.Time `gorm:"autoCreateTime" json:"created_on"`
	UpdatedOn        time.Time `gorm:"autoUpdateTime" json:"updated_on"`

	Skill      *Skill                `gorm:"foreignKey:SkillID" json:"-"`
	VisaStatus *Visa                 `gorm:"foreignKey:VisaStatusID" json:"-"`
	Address    *ConsultantAddress    `json:"address"`
	Education  []ConsultantEducation `json:"education"`
}

func (c Consultant) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ConsultantAddress: at most one per consultant.
type ConsultantAddress struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	ConsultantID uint   `gorm:"not null;uniqueIndex" json:"-"`
	Street       string `gorm:"size:255;not null" json:"street"`
	City         string `gorm:"size:100;not null" json:"city"`
	State        string `gorm:"size:50;not null" json:"state"`
	Zipcode      string `gorm:"size:10;not null" json:"zipcode"`
}

type ConsultantEducation struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	ConsultantID     uint   `gorm:"not null;index" json:"-"`
	Type             string `gorm:"size:50;not null" json:"type"`
	UniversityName   string `gorm:"size:255;not null" json:"university_name"`
	Major            string `gorm:"size:100;not null" json:"major"`
	YearOfCompletion Date   `gorm:"type:date;not null" json:"year_of_completion"`
}
