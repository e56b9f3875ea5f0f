package database

import (
	"errors"
	"fmt"
	"time"

	"vendor-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrResumePassed: the chain already has a submission whose resume reached the client.
	ErrResumePassed = errors.New("consultant already submitted to this client chain")
	// ErrChainExists: the chain already has a submission (resume not passed yet).
	ErrChainExists   = errors.New("submission already exists for this chain")
	ErrInvalidPeriod = errors.New("invalid period")
)

// MissingRefError names a referenced row that does not exist.
type MissingRefError struct {
	Entity string
	ID     uint
}

func (e *MissingRefError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// CheckRefs verifies every id the submission points at.
func CheckRefs(tx *gorm.DB, s *models.Submission) error {
	refs := []struct {
		entity string
		model  any
		id     *uint
	}{
		{"Consultant", &models.Consultant{}, &s.ConsultantID},
		{"Skill", &models.Skill{}, s.SkillID},
		{"Vendor", &models.Vendor{}, s.VendorID},
		{"Prime vendor", &models.Vendor{}, s.PrimeVendorID},
		{"Implementation partner", &models.Vendor{}, s.ImplementationPartnerID},
		{"Client", &models.Client{}, s.EndClientID},
		{"Marketer", &models.Marketer{}, s.MarketerID},
	}
	for _, r := range refs {
		if r.id == nil {
			continue
		}
		var n int64
		if err := tx.Model(r.model).Where("id = ?", *r.id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return &MissingRefError{Entity: r.entity, ID: *r.id}
		}
	}
	return nil
}

// ChainScope matches rows with exactly this chain; nil slots match NULL only.
func ChainScope(ch models.Chain) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("consultant_id = ?", ch.ConsultantID)
		db = eqOrNull(db, "vendor_id", ch.VendorID)
		db = eqOrNull(db, "prime_vendor_id", ch.PrimeVendorID)
		db = eqOrNull(db, "implementation_partner_id", ch.ImplementationPartnerID)
		return eqOrNull(db, "end_client_id", ch.EndClientID)
	}
}

func eqOrNull(db *gorm.DB, column string, v *uint) *gorm.DB {
	if v == nil {
		return db.Where(column + " IS NULL")
	}
	return db.Where(column+" = ?", *v)
}

// CheckChain returns ErrResumePassed or ErrChainExists when another submission
// (other than excludeID) already uses the chain.
func CheckChain(tx *gorm.DB, ch models.Chain, excludeID uint) error {
	var existing []models.Submission
	q := tx.Model(&models.Submission{}).Scopes(ChainScope(ch))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&existing).Error; err != nil {
		return err
	}

	for _, s := range existing {
		if s.ResumePassedToClient {
			return ErrResumePassed
		}
	}
	if len(existing) > 0 {
		return ErrChainExists
	}
	return nil
}

// CreateSubmission runs the chain check and the insert in one transaction.
// A concurrent insert of the same fully filled chain is caught by idx_submission_chain_slots.
func CreateSubmission(db *gorm.DB, s *models.Submission) error {
	if s.VendorResponse == "" {
		s.VendorResponse = models.ResponseClientSubmitted
	}
	if s.SubmissionDate.IsZero() {
		s.SubmissionDate = time.Now().UTC()
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := CheckRefs(tx, s); err != nil {
			return err
		}
		if err := CheckChain(tx, s.Chain(), 0); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(s).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrChainExists
	}
	return err
}

// UpdateSubmission saves s; when the chain changed it is re-checked first.
func UpdateSubmission(db *gorm.DB, s *models.Submission, chainChanged bool) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := CheckRefs(tx, s); err != nil {
			return err
		}
		if chainChanged {
			if err := CheckChain(tx, s.Chain(), s.ID); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(s).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrChainExists
	}
	return err
}

var periodDays = map[string]int{
	"day":   0,
	"week":  7,
	"month": 30,
	"year":  365,
}

// ReportWindowStart maps a period to the first instant counted: local midnight
// of now's day minus a fixed number of days (month = 30, year = 365).
func ReportWindowStart(period string, now time.Time) (time.Time, error) {
	days, ok := periodDays[period]
	if !ok {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidPeriod, period)
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -days), nil
}

type ConsultantCount struct {
	ConsultantID   uint   `json:"consultant_id"`
	FirstName      string `json:"consultant__first_name"`
	ConsultantName string `json:"consultant_name"`
	Count          int64  `json:"count"`
}

type SubmissionReport struct {
	Period            string            `json:"period"`
	Since             time.Time         `json:"since"`
	TotalSubmissions  int64             `json:"total_submissions"`
	ConsultantSummary []ConsultantCount `json:"consultant_summary"`
}

func BuildSubmissionReport(db *gorm.DB, period string, now time.Time) (*SubmissionReport, error) {
	since, err := ReportWindowStart(period, now)
	if err != nil {
		return nil, err
	}
	sinceUTC := since.UTC()

	report := &SubmissionReport{
		Period:            period,
		Since:             since,
		ConsultantSummary: []ConsultantCount{},
	}

	if err := db.Model(&models.Submission{}).
		Where("submission_date >= ?", sinceUTC).
		Count(&report.TotalSubmissions).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		ConsultantID    uint
		FirstName       string
		LastName        string
		SubmissionCount int64
	}
	err = db.Model(&models.Submission{}).
		Select("submissions.consultant_id AS consultant_id, consultants.first_name AS first_name, consultants.last_name AS last_name, COUNT(submissions.id) AS submission_count").
		Joins("JOIN consultants ON consultants.id = submissions.consultant_id").
		Where("submissions.submission_date >= ?", sinceUTC).
		Group("submissions.consultant_id, consultants.first_name, consultants.last_name").
		Order("submission_count DESC, submissions.consultant_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		report.ConsultantSummary = append(report.ConsultantSummary, ConsultantCount{
			ConsultantID:   r.ConsultantID,
			FirstName:      r.FirstName,
			ConsultantName: r.FirstName + " " + r.LastName,
			Count:          r.SubmissionCount,
		})
	}
	return report, nil
}
