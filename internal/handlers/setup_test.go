package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB points database.DB at a fresh in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

func newTestRouter() *gin.Engine {
	r := gin.New()

	r.POST("/vendor/AddVendor/", AddVendor)
	r.GET("/vendor/GetVendor/", GetVendors)
	r.GET("/vendor/GetVendorByID/:id/", GetVendorByID)
	r.PATCH("/vendor/UpdateVendor/:id/", UpdateVendor)
	r.PUT("/vendor/UpdateVendor/:id/", UpdateVendor)
	r.DELETE("/vendor/DeleteVendor/:id/", DeleteVendor)
	r.GET("/vendor/VendorStats/", VendorStats)
	r.POST("/vendor/AddVendorContact/:vendor_id/", AddVendorContact)
	r.GET("/vendor/GetVendorContacts/:vendor_id/", GetVendorContacts)
	r.DELETE("/vendor/DeleteVendorContact/", DeleteVendorContact)
	r.POST("/vendor/AddVendorAddress/", AddVendorAddress)
	r.POST("/vendor/GetVendorAddresses/", GetVendorAddresses)

	r.GET("/client/domains/", GetDomains)
	r.POST("/client/AddClient/", AddClient)
	r.GET("/client/GetClientByID/:id/", GetClientByID)
	r.PUT("/client/UpdateClient/:id/", UpdateClient)
	r.PATCH("/client/UpdateClient/:id/", UpdateClient)
	r.GET("/client/GetVendor/", GetVendors)
	r.DELETE("/client/DeleteClient/:id/", DeleteClient)
	r.POST("/client/SearchClient/", SearchClient)
	r.GET("/client/ClientStats/", ClientStats)
	r.POST("/client/AddClientAddress/", AddClientAddress)
	r.POST("/client/GetClientAddresses/", GetClientAddresses)
	r.DELETE("/client/DeleteClientAddress/", DeleteClientAddress)
	r.POST("/client/AttachVendor/:client_id/", AttachVendor)
	r.GET("/client/GetVendorsForClient/:client_id/", GetVendorsForClient)
	r.DELETE("/client/DetachVendorFromClient/:client_id/:vendor_id/", DetachVendorFromClient)

	r.POST("/sale/AddSkill/", AddSkill)
	r.GET("/sale/GetSkill/", GetSkills)
	r.POST("/sale/AddConsultant/", AddConsultant)
	r.GET("/sale/GetAllConsultants/", GetAllConsultants)
	r.POST("/sale/GetConsultantByID/", GetConsultantByID)
	r.PUT("/sale/UpdateConsultant/", UpdateConsultant)
	r.POST("/sale/UpdateConsultantStatus/", UpdateConsultantStatus)
	r.DELETE("/sale/DeleteConsultant/:id/", DeleteConsultant)
	r.POST("/sale/AddSubmission/", AddSubmission)
	r.PUT("/sale/UpdateSubmission/", UpdateSubmission)
	r.POST("/sale/UpdateVendorResponse/", UpdateVendorResponse)
	r.POST("/sale/GetSubmissionReport/", GetSubmissionReport)
	r.GET("/sale/GetAllSubmissions/", GetAllSubmissions)
	r.POST("/sale/GetSubmissionByID/", GetSubmissionByID)
	r.POST("/sale/GetSubmissionByVendor/", GetSubmissionByVendor)

	r.POST("/adminpanel/AddMarketer/", AddMarketer)
	r.POST("/adminpanel/GetMarketer/", GetMarketer)
	r.GET("/adminpanel/AuditLog/", ListAuditLogs)
	r.GET("/admin/GetMarketer/", ListMarketers)
	r.GET("/states/", GetStates)
	r.GET("/health", Health)

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
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

func seedConsultant(t *testing.T, db *gorm.DB, email, ssn, first string) models.Consultant {
	t.Helper()
	c := models.Consultant{
		Email:        email,
		FirstName:    first,
		LastName:     "Doe",
		DOB:          models.NewDate(1990, 1, 1),
		SSN:          ssn,
		PhoneNumber:  "5550100",
		ExpectedRate: 70,
		Recruiter:    1,
		Active:       true,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
