package handlers

import (
	"errors"
	"net/http"
	"strings"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/metrics"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type addrInfo struct {
	Street  string `json:"Street"`
	City    string `json:"City"`
	State   string `json:"State"`
	Zipcode string `json:"Zipcode"`
}

type eduInfo struct {
	Type             string       `json:"Type"`
	UniversityName   string       `json:"UniversityName"`
	Major            string       `json:"Major"`
	YearOfCompletion *models.Date `json:"YearOfCompletion"`
}

// consultantPayload carries the external PascalCase keys. nil means "not sent".
type consultantPayload struct {
	ID               uint         `json:"id"`
	Email            *string      `json:"Email"`
	FirstName        *string      `json:"FirstName"`
	MiddleName       *string      `json:"MiddleName"`
	LastName         *string      `json:"LastName"`
	DOB              *models.Date `json:"DOB"`
	SSN              *string      `json:"SSN"`
	PhoneNumber      *string      `json:"PhoneNumber"`
	OtherPhoneNumber *string      `json:"OtherPhoneNumber"`
	SkypeID          *string      `json:"SkypeId"`
	SkillID          *uint        `json:"SkillId"`
	ExpectedRate     *float64     `json:"ExpectedRate"`
	VisaStatus       *uint        `json:"VisaStatus"`
	PassportNumber   *string      `json:"PassportNumber"`
	Exp              *bool        `json:"Exp"`
	GK               *bool        `json:"GK"`
	GKMoveInDate     *models.Date `json:"GKMoveInDate"`
	USEntryDate      *models.Date `json:"USEntryDate"`
	Recruiter        *int         `json:"Recruiter"`
	Active           *bool        `json:"Active"`
	StreetAddress    *string      `json:"StreetAddress"`
	PrefLocation     *string      `json:"PrefLocation"`
	Priority         *int         `json:"priority"`
	AddrInfo         *addrInfo    `json:"AddrInfo"`
	ListOfEdu        []eduInfo    `json:"ListOfEdu"`
}

func (p consultantPayload) apply(c *models.Consultant) {
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.FirstName != nil {
		c.FirstName = strings.TrimSpace(*p.FirstName)
	}
	if p.MiddleName != nil {
		c.MiddleName = trimmed(p.MiddleName)
	}
	if p.LastName != nil {
		c.LastName = strings.TrimSpace(*p.LastName)
	}
	if p.DOB != nil {
		c.DOB = *p.DOB
	}
	if p.SSN != nil {
		c.SSN = strings.TrimSpace(*p.SSN)
	}
	if p.PhoneNumber != nil {
		c.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}
	if p.OtherPhoneNumber != nil {
		c.OtherPhoneNumber = trimmed(p.OtherPhoneNumber)
	}
	if p.SkypeID != nil {
		c.SkypeID = trimmed(p.SkypeID)
	}
	if p.SkillID != nil {
		c.SkillID = p.SkillID
	}
	if p.ExpectedRate != nil {
		c.ExpectedRate = *p.ExpectedRate
	}
	if p.VisaStatus != nil {
		c.VisaStatusID = p.VisaStatus
	}
	if p.PassportNumber != nil {
		c.PassportNumber = trimmed(p.PassportNumber)
	}
	if p.Exp != nil {
		c.Exp = *p.Exp
	}
	if p.GK != nil {
		c.GK = *p.GK
	}
	if p.GKMoveInDate != nil {
		c.GKMoveInDate = p.GKMoveInDate
	}
	if p.USEntryDate != nil {
		c.USEntryDate = p.USEntryDate
	}
	if p.Recruiter != nil {
		c.Recruiter = *p.Recruiter
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	if p.StreetAddress != nil {
		c.StreetAddress = trimmed(p.StreetAddress)
	}
	if p.PrefLocation != nil {
		c.PrefLocation = trimmed(p.PrefLocation)
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
}

func (p consultantPayload) address() *models.ConsultantAddress {
	if p.AddrInfo == nil {
		return nil
	}
	return &models.ConsultantAddress{
		Street:  strings.TrimSpace(p.AddrInfo.Street),
		City:    strings.TrimSpace(p.AddrInfo.City),
		State:   strings.TrimSpace(p.AddrInfo.State),
		Zipcode: strings.TrimSpace(p.AddrInfo.Zipcode),
	}
}

func (p consultantPayload) education() []models.ConsultantEducation {
	if len(p.ListOfEdu) == 0 {
		return nil
	}
	out := make([]models.ConsultantEducation, 0, len(p.ListOfEdu))
	for _, e := range p.ListOfEdu {
		edu := models.ConsultantEducation{
			Type:           strings.TrimSpace(e.Type),
			UniversityName: strings.TrimSpace(e.UniversityName),
			Major:          strings.TrimSpace(e.Major),
		}
		if e.YearOfCompletion != nil {
			edu.YearOfCompletion = *e.YearOfCompletion
		}
		out = append(out, edu)
	}
	return out
}

// validateConsultant collects every field problem of the merged record.
// Field names are the stored ones.
func validateConsultant(db *gorm.DB, c models.Consultant, p consultantPayload, creating bool,
	addr *models.ConsultantAddress, edu []models.ConsultantEducation) error {
	fields := map[string]string{}
	req := "This field is required."

	if c.Email == "" {
		fields["email"] = req
	} else if !strings.Contains(c.Email, "@") {
		fields["email"] = "Enter a valid email address."
	}
	if c.FirstName == "" {
		fields["first_name"] = req
	}
	if c.LastName == "" {
		fields["last_name"] = req
	}
	if c.DOB.IsZero() {
		fields["dob"] = req
	}
	if c.SSN == "" {
		fields["ssn"] = req
	} else if len(c.SSN) > 15 {
		fields["ssn"] = "Ensure this field has no more than 15 characters."
	}
	if c.PhoneNumber == "" {
		fields["phone_number"] = req
	}
	if creating && p.ExpectedRate == nil {
		fields["expected_rate"] = req
	}
	if creating && p.Recruiter == nil {
		fields["recruiter"] = req
	}

	if c.SkillID != nil {
		var n int64
		if err := db.Model(&models.Skill{}).Where("id = ?", *c.SkillID).Count(&n).Error; err != nil {
			return internalError("check skill", err)
		}
		if n == 0 {
			fields["skill"] = "Invalid pk - object does not exist."
		}
	}
	if c.VisaStatusID != nil {
		var n int64
		if err := db.Model(&models.Visa{}).Where("id = ?", *c.VisaStatusID).Count(&n).Error; err != nil {
			return internalError("check visa", err)
		}
		if n == 0 {
			fields["visa_status"] = "Invalid pk - object does not exist."
		}
	}

	if c.SSN != "" {
		taken, err := database.SSNTaken(db, c.SSN, c.ID)
		if err != nil {
			return internalError("check ssn", err)
		}
		if taken {
			fields["ssn"] = "consultant with this ssn already exists."
		}
	}
	// Bulk create reports duplicate emails separately; update must reject them.
	if !creating && c.Email != "" {
		taken, err := database.EmailTaken(db, c.Email, c.ID)
		if err != nil {
			return internalError("check email", err)
		}
		if taken {
			fields["email"] = "consultant with this email already exists."
		}
	}

	if addr != nil && (addr.Street == "" || addr.City == "" || addr.State == "" || addr.Zipcode == "") {
		fields["address"] = "street, city, state and zipcode are required."
	}
	for _, e := range edu {
		if e.Type == "" || e.UniversityName == "" || e.Major == "" || e.YearOfCompletion.IsZero() {
			fields["education"] = "type, university_name, major and year_of_completion are required."
			break
		}
	}

	if len(fields) > 0 {
		apiErr := validationError("Invalid consultant data")
		apiErr.Fields = fields
		return apiErr
	}
	return nil
}

type bulkConsultantPayload struct {
	Consultants []consultantPayload `json:"lstaddconslmodel"`
}

// AddConsultant creates consultants in bulk. Entries whose email already
// exists are skipped and reported; the first invalid entry stops the batch
// with 400, leaving earlier entries created.
func AddConsultant(c *gin.Context) {
	var body bulkConsultantPayload
	if !bindJSON(c, &body) {
		return
	}
	if len(body.Consultants) == 0 {
		respondError(c, validationError("No consultant data provided"))
		return
	}

	created := []models.Consultant{}
	duplicates := []string{}

	for _, p := range body.Consultants {
		cons := models.Consultant{Active: true}
		p.apply(&cons)

		if cons.Email != "" {
			taken, err := database.EmailTaken(database.DB, cons.Email, 0)
			if err != nil {
				respondError(c, internalError("check email", err))
				return
			}
			if taken {
				duplicates = append(duplicates, cons.Email)
				continue
			}
		}

		addr, edu := p.address(), p.education()
		if err := validateConsultant(database.DB, cons, p, true, addr, edu); err != nil {
			respondError(c, err)
			return
		}
		cons.Address = addr
		cons.Education = edu

		if err := database.CreateConsultant(database.DB, &cons); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				duplicates = append(duplicates, cons.Email)
				continue
			}
			respondError(c, internalError("create consultant", err))
			return
		}

		metrics.ConsultantsCreated.Inc()
		audit(c, "consultant", cons.ID, "create", "Consultant created: "+cons.FullName())
		created = append(created, cons)
	}

	switch {
	case len(duplicates) > 0 && len(created) == 0:
		c.JSON(http.StatusConflict, gin.H{
			"message":    "Duplicate email(s) found. No new consultants created.",
			"duplicates": duplicates,
		})
	case len(duplicates) > 0:
		c.JSON(http.StatusMultiStatus, gin.H{
			"message":    "Some consultants added. Some duplicates skipped.",
			"created":    created,
			"duplicates": duplicates,
		})
	default:
		respondData(c, http.StatusCreated, "Consultants added successfully", created)
	}
}

func GetAllConsultants(c *gin.Context) {
	consultants := []models.Consultant{}
	if err := database.DB.Preload("Address").
		Preload("Education", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("id desc").
		Find(&consultants).Error; err != nil {
		respondError(c, internalError("list consultants", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultants": consultants})
}

func loadConsultant(id uint) (models.Consultant, error) {
	cons, err := database.LoadConsultant(database.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cons, notFound("Consultant")
	}
	if err != nil {
		return cons, internalError("load consultant", err)
	}
	return cons, nil
}

func GetConsultantByID(c *gin.Context) {
	var body struct {
		ID uint `json:"Id"`
	}
	if !bindJSON(c, &body) {
		return
	}
	if body.ID == 0 {
		respondError(c, notFound("Consultant"))
		return
	}
	cons, err := loadConsultant(body.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultant": cons})
}

// UpdateConsultant merges the sent fields. AddrInfo upserts the address;
// a non-empty ListOfEdu replaces all education rows.
func UpdateConsultant(c *gin.Context) {
	var p consultantPayload
	if !bindJSON(c, &p) {
		return
	}
	if p.ID == 0 {
		respondError(c, validationError("Consultant id is required"))
		return
	}

	cons, err := loadConsultant(p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	p.apply(&cons)

	addr, edu := p.address(), p.education()
	if err := validateConsultant(database.DB, cons, p, false, addr, edu); err != nil {
		respondError(c, err)
		return
	}

	if err := database.UpdateConsultant(database.DB, &cons, addr, edu); err != nil {
		respondError(c, internalError("update consultant", err))
		return
	}

	updated, err := loadConsultant(cons.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	audit(c, "consultant", cons.ID, "update", "Consultant updated: "+cons.FullName())
	respondData(c, http.StatusOK, "Consultant updated successfully", updated)
}

func UpdateConsultantStatus(c *gin.Context) {
	var body struct {
		ConslID uint `json:"ConslId"`
		Status  bool `json:"Status"`
	}
	if !bindJSON(c, &body) {
		return
	}

	var cons models.Consultant
	if err := database.DB.First(&cons, body.ConslID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFound("Consultant"))
			return
		}
		respondError(c, internalError("load consultant", err))
		return
	}

	if err := database.DB.Model(&cons).Update("active", body.Status).Error; err != nil {
		respondError(c, internalError("update consultant status", err))
		return
	}

	msg := "Removed from Hotlist"
	if body.Status {
		msg = "Moved to Hotlist"
	}
	audit(c, "consultant", cons.ID, "status", msg)
	c.JSON(http.StatusOK, gin.H{"message": msg, "consultant_id": cons.ID})
}

func DeleteConsultant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var cons models.Consultant
	if err := database.DB.First(&cons, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFound("Consultant"))
			return
		}
		respondError(c, internalError("load consultant", err))
		return
	}

	if err := database.DeleteConsultant(database.DB, cons.ID); err != nil {
		respondError(c, internalError("delete consultant", err))
		return
	}

	audit(c, "consultant", cons.ID, "delete", "Consultant deleted: "+cons.FullName())
	c.Status(http.StatusNoContent)
}
