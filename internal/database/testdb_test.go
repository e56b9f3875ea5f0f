package database

import (
	"testing"

	"vendor-tracker/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory sqlite database with the full schema.
// One connection only: every new :memory: connection would see an empty database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func seedConsultant(t *testing.T, db *gorm.DB, email, ssn, first string) models.Consultant {
	t.Helper()
	c := models.Consultant{
		Email:       email,
		FirstName:   first,
		LastName:    "Doe",
		DOB:         models.NewDate(1990, 1, 1),
		SSN:         ssn,
		PhoneNumber: "5550100",
		Recruiter:   1,
		Active:      true,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedVendor(t *testing.T, db *gorm.DB, name string) models.Vendor {
	t.Helper()
	v := models.Vendor{Name: name, Status: models.VendorActive}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func seedClient(t *testing.T, db *gorm.DB, name string) models.Client {
	t.Helper()
	c := models.Client{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func uintPtr(v uint) *uint { return &v }
