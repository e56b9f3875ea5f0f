package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/metrics"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// now is the report clock.
var now = time.Now

const (
	msgResumePassed = "Consultant already submitted to this client chain. Duplicate blocked."
	msgChainExists  = "Submission already exists for this chain"
)

// submissionView adds the read-only display names of the related rows.
type submissionView struct {
	models.Submission
	ConsultantName            string  `json:"consultant_name"`
	VendorName                *string `json:"vendor_name"`
	PrimeVendorName           *string `json:"prime_vendor_name"`
	ImplementationPartnerName *string `json:"implementation_partner_name"`
	EndClientName             *string `json:"end_client_name"`
	MarketerName              *string `json:"marketer_name"`
	SkillName                 *string `json:"skill_name"`
}

func newSubmissionView(s models.Submission) submissionView {
	v := submissionView{Submission: s, ConsultantName: s.Consultant.FirstName}
	if s.Vendor != nil {
		v.VendorName = &s.Vendor.Name
	}
	if s.PrimeVendor != nil {
		v.PrimeVendorName = &s.PrimeVendor.Name
	}
	if s.ImplementationPartner != nil {
		v.ImplementationPartnerName = &s.ImplementationPartner.Name
	}
	if s.EndClient != nil {
		v.EndClientName = &s.EndClient.Name
	}
	if s.Marketer != nil {
		v.MarketerName = &s.Marketer.Username
	}
	if s.Skill != nil {
		v.SkillName = &s.Skill.Name
	}
	return v
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Consultant").
		Preload("Skill").
		Preload("Vendor").
		Preload("PrimeVendor").
		Preload("ImplementationPartner").
		Preload("EndClient").
		Preload("Marketer")
}

func findSubmissions(c *gin.Context, key string, query func(*gorm.DB) *gorm.DB) {
	var subs []models.Submission
	if err := database.DB.Scopes(withRelations, query).
		Order("submission_date desc, id desc").
		Find(&subs).Error; err != nil {
		respondError(c, internalError("list submissions", err))
		return
	}
	views := make([]submissionView, 0, len(subs))
	for _, s := range subs {
		views = append(views, newSubmissionView(s))
	}
	c.JSON(http.StatusOK, gin.H{key: views})
}

func loadSubmissionView(id uint) (submissionView, error) {
	var s models.Submission
	err := database.DB.Scopes(withRelations).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return submissionView{}, notFound("Submission")
	}
	if err != nil {
		return submissionView{}, internalError("load submission", err)
	}
	return newSubmissionView(s), nil
}

// ledgerError maps store errors of the submission ledger to API errors.
func ledgerError(err error) error {
	var missing *database.MissingRefError
	switch {
	case errors.As(err, &missing):
		return notFound(missing.Entity)
	case errors.Is(err, database.ErrResumePassed):
		return conflict(msgResumePassed)
	case errors.Is(err, database.ErrChainExists):
		return conflict(msgChainExists)
	}
	return internalError("write submission", err)
}

func rejectReason(err error) string {
	var missing *database.MissingRefError
	switch {
	case errors.As(err, &missing):
		return metrics.ReasonNotFound
	case errors.Is(err, database.ErrResumePassed):
		return metrics.ReasonResumePassed
	case errors.Is(err, database.ErrChainExists):
		return metrics.ReasonChainExists
	}
	return ""
}

type addSubmissionPayload struct {
	Consultant              *uint   `json:"consultant"`
	ConsultantID            *uint   `json:"ConsultantId"`
	SkillID                 *uint   `json:"SkillId"`
	Vendor                  *uint   `json:"vendor"`
	VendorID                *uint   `json:"VendorId"`
	PrimeVendorID           *uint   `json:"PrimeVendorId"`
	ImplementationPartnerID *uint   `json:"ImplementationPartnerId"`
	ClientID                *uint   `json:"ClientId"`
	Marketer                *uint   `json:"Marketer"`
	Comments                *string `json:"Comments"`
}

func firstSet(ids ...*uint) *uint {
	for _, id := range ids {
		if id != nil && *id != 0 {
			return id
		}
	}
	return nil
}

func AddSubmission(c *gin.Context) {
	var p addSubmissionPayload
	if !bindJSON(c, &p) {
		return
	}

	consultant := firstSet(p.Consultant, p.ConsultantID)
	if consultant == nil {
		respondError(c, required("consultant"))
		return
	}

	s := models.Submission{
		ConsultantID:            *consultant,
		SkillID:                 firstSet(p.SkillID),
		VendorID:                firstSet(p.Vendor, p.VendorID),
		PrimeVendorID:           firstSet(p.PrimeVendorID),
		ImplementationPartnerID: firstSet(p.ImplementationPartnerID),
		EndClientID:             firstSet(p.ClientID),
		MarketerID:              firstSet(p.Marketer),
		Comments:                p.Comments,
		VendorResponse:          models.ResponseClientSubmitted,
	}

	if err := database.CreateSubmission(database.DB, &s); err != nil {
		if reason := rejectReason(err); reason != "" {
			metrics.SubmissionsRejected.WithLabelValues(reason).Inc()
		}
		respondError(c, ledgerError(err))
		return
	}
	metrics.SubmissionsCreated.Inc()
	audit(c, "submission", s.ID, "create", "Submission added")

	view, err := loadSubmissionView(s.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Submission added successfully", view)
}

// UpdateVendorResponse sets the client feedback. Any transition is allowed;
// an absent ResumePassedToClient resets the flag.
func UpdateVendorResponse(c *gin.Context) {
	var body struct {
		SubmissionID         uint                  `json:"SubmissionId"`
		VendorResponse       models.VendorResponse `json:"VendorResponse"`
		ResumePassedToClient bool                  `json:"ResumePassedToClient"`
	}
	if !bindJSON(c, &body) {
		return
	}

	var s models.Submission
	if err := database.DB.First(&s, body.SubmissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFound("Submission"))
			return
		}
		respondError(c, internalError("load submission", err))
		return
	}

	if !body.VendorResponse.IsValid() {
		apiErr := validationError("Invalid request payload")
		apiErr.Fields = map[string]string{
			"vendor_response": "Must be one of: ClientSubmitted ClientRejected ClientSelected.",
		}
		respondError(c, apiErr)
		return
	}

	s.VendorResponse = body.VendorResponse
	s.ResumePassedToClient = body.ResumePassedToClient
	if err := database.UpdateSubmission(database.DB, &s, false); err != nil {
		respondError(c, ledgerError(err))
		return
	}
	audit(c, "submission", s.ID, "update", "Vendor response: "+string(s.VendorResponse))

	view, err := loadSubmissionView(s.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Vendor response updated", view)
}

// optionalID tells an absent key (Set false) from an explicit null.
type optionalID struct {
	Set   bool
	Value *uint
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o optionalID) applyTo(dst **uint) {
	if o.Set {
		*dst = o.Value
	}
}

type updateSubmissionPayload struct {
	ID                    uint                   `json:"Id"`
	Consultant            optionalID             `json:"consultant"`
	Skill                 optionalID             `json:"skill"`
	Vendor                optionalID             `json:"vendor"`
	PrimeVendor           optionalID             `json:"prime_vendor"`
	ImplementationPartner optionalID             `json:"implementation_partner"`
	EndClient             optionalID             `json:"end_client"`
	Marketer              optionalID             `json:"marketer"`
	SubmissionDate        *time.Time             `json:"submission_date"`
	Comments              *string                `json:"comments"`
	VendorResponse        *models.VendorResponse `json:"vendor_response"`
	ResumePassedToClient  *bool                  `json:"resume_passed_to_client"`
	IsDuplicate           *bool                  `json:"is_duplicate"`
}

// UpdateSubmission merges the sent snake_case fields; a changed chain is
// re-checked for uniqueness.
func UpdateSubmission(c *gin.Context) {
	var p updateSubmissionPayload
	if !bindJSON(c, &p) {
		return
	}

	var s models.Submission
	if err := database.DB.First(&s, p.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, notFound("Submission"))
			return
		}
		respondError(c, internalError("load submission", err))
		return
	}
	before := s.Chain()

	if p.Consultant.Set {
		if p.Consultant.Value == nil {
			apiErr := validationError("Invalid request payload")
			apiErr.Fields = map[string]string{"consultant": "This field may not be null."}
			respondError(c, apiErr)
			return
		}
		s.ConsultantID = *p.Consultant.Value
	}
	p.Skill.applyTo(&s.SkillID)
	p.Vendor.applyTo(&s.VendorID)
	p.PrimeVendor.applyTo(&s.PrimeVendorID)
	p.ImplementationPartner.applyTo(&s.ImplementationPartnerID)
	p.EndClient.applyTo(&s.EndClientID)
	p.Marketer.applyTo(&s.MarketerID)
	if p.SubmissionDate != nil {
		s.SubmissionDate = p.SubmissionDate.UTC()
	}
	if p.Comments != nil {
		s.Comments = p.Comments
	}
	if p.VendorResponse != nil {
		if !p.VendorResponse.IsValid() {
			apiErr := validationError("Invalid request payload")
			apiErr.Fields = map[string]string{
				"vendor_response": "Must be one of: ClientSubmitted ClientRejected ClientSelected.",
			}
			respondError(c, apiErr)
			return
		}
		s.VendorResponse = *p.VendorResponse
	}
	if p.ResumePassedToClient != nil {
		s.ResumePassedToClient = *p.ResumePassedToClient
	}
	if p.IsDuplicate != nil {
		s.IsDuplicate = *p.IsDuplicate
	}

	if err := database.UpdateSubmission(database.DB, &s, !sameChain(before, s.Chain())); err != nil {
		respondError(c, ledgerError(err))
		return
	}
	audit(c, "submission", s.ID, "update", "Submission updated")

	view, err := loadSubmissionView(s.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Submission updated successfully", view)
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameChain(a, b models.Chain) bool {
	return a.ConsultantID == b.ConsultantID &&
		sameID(a.VendorID, b.VendorID) &&
		sameID(a.PrimeVendorID, b.PrimeVendorID) &&
		sameID(a.ImplementationPartnerID, b.ImplementationPartnerID) &&
		sameID(a.EndClientID, b.EndClientID)
}

func GetSubmissionReport(c *gin.Context) {
	var body struct {
		Period string `json:"Period"`
	}
	if !bindJSON(c, &body) {
		return
	}

	report, err := database.BuildSubmissionReport(database.DB, body.Period, now())
	if errors.Is(err, database.ErrInvalidPeriod) {
		respondError(c, validationError("Invalid Period"))
		return
	}
	if err != nil {
		respondError(c, internalError("submission report", err))
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetAllSubmissions(c *gin.Context) {
	findSubmissions(c, "submissions", func(db *gorm.DB) *gorm.DB { return db })
}

func GetSubmissionByID(c *gin.Context) {
	var body struct {
		SubmissionID uint `json:"SubmissionId"`
	}
	if !bindJSON(c, &body) {
		return
	}
	if body.SubmissionID == 0 {
		respondError(c, validationError("SubmissionId is required"))
		return
	}
	view, err := loadSubmissionView(body.SubmissionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": view})
}

// bodyID accepts a positive whole JSON number or a decimal string such as "5".
func bodyID(v any) (uint, bool) {
	switch x := v.(type) {
	case float64:
		if x < 1 || x != math.Trunc(x) || x > math.MaxUint32 {
			return 0, false
		}
		return uint(x), true
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(x), 10, 32)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

// submissionsBy builds a POST handler filtering on column by the id under key.
func submissionsBy(key, column, resultKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if !bindJSON(c, &body) {
			return
		}
		raw, ok := body[key]
		if !ok || raw == nil || raw == "" {
			respondError(c, validationError(key+" is required"))
			return
		}
		id, ok := bodyID(raw)
		if !ok {
			respondError(c, validationError("Invalid "+key))
			return
		}
		findSubmissions(c, resultKey, func(db *gorm.DB) *gorm.DB {
			return db.Where(column+" = ?", id)
		})
	}
}

var (
	GetSubmissionByVendor     = submissionsBy("VendorId", "vendor_id", "vendor_submissions")
	GetSubmissionByClient     = submissionsBy("ClientId", "end_client_id", "client_submissions")
	GetSubmissionByMarketer   = submissionsBy("MarketerId", "marketer_id", "marketer_submissions")
	GetSubmissionByConsultant = submissionsBy("ConsultantId", "consultant_id", "consultant_submissions")
)
