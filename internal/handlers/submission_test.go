package handlers

import (
	"net/http"
	"testing"
	"time"

	"vendor-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type chainFixture struct {
	consultant models.Consultant
	vendor     models.Vendor
	prime      models.Vendor
	client     models.Client
}

func seedChain(t *testing.T, db *gorm.DB) chainFixture {
	t.Helper()
	return chainFixture{
		consultant: seedConsultant(t, db, "ravi@example.test", "123-45-6789", "Ravi"),
		vendor:     seedVendor(t, db, "Acme"),
		prime:      seedVendor(t, db, "Prime Co"),
		client:     seedClient(t, db, "Contoso"),
	}
}

func (f chainFixture) body() map[string]any {
	return map[string]any{
		"consultant":    f.consultant.ID,
		"vendor":        f.vendor.ID,
		"PrimeVendorId": f.prime.ID,
		"ClientId":      f.client.ID,
		"Comments":      "strong Go profile",
	}
}

func TestAddSubmission(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)

	w := doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Submission added successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Ravi", data["consultant_name"])
	assert.Equal(t, "Acme", data["vendor_name"])
	assert.Equal(t, "Prime Co", data["prime_vendor_name"])
	assert.Equal(t, "Contoso", data["end_client_name"])
	assert.Nil(t, data["implementation_partner_name"])
	assert.Equal(t, "ClientSubmitted", data["vendor_response"])

	w = doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Submission already exists for this chain", decode(t, w)["message"])

	// a different implementation partner is a different chain
	other := f.body()
	ip := seedVendor(t, db, "Partner")
	other["ImplementationPartnerId"] = ip.ID
	w = doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", other)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAddSubmission_ResumePassedBlocks(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)

	existing := models.Submission{
		ConsultantID:         f.consultant.ID,
		VendorID:             &f.vendor.ID,
		PrimeVendorID:        &f.prime.ID,
		EndClientID:          &f.client.ID,
		SubmissionDate:       time.Now().UTC(),
		VendorResponse:       models.ResponseClientSubmitted,
		ResumePassedToClient: true,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&existing).Error)

	w := doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Consultant already submitted to this client chain. Duplicate blocked.", decode(t, w)["message"])
}

func TestAddSubmission_References(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)

	body := f.body()
	delete(body, "consultant")
	w := doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "consultant")

	body = f.body()
	body["vendor"] = 999
	w = doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", body)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Vendor not found", decode(t, w)["message"])

	// legacy key is accepted
	body = f.body()
	delete(body, "consultant")
	body["ConsultantId"] = f.consultant.ID
	w = doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUpdateVendorResponse(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)

	w := doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["data"].(map[string]any)["id"]

	w = doJSON(t, r, http.MethodPost, "/sale/UpdateVendorResponse/", map[string]any{
		"SubmissionId": id, "VendorResponse": "ClientSelected", "ResumePassedToClient": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "ClientSelected", data["vendor_response"])
	assert.Equal(t, true, data["resume_passed_to_client"])

	w = doJSON(t, r, http.MethodPost, "/sale/UpdateVendorResponse/", map[string]any{
		"SubmissionId": id, "VendorResponse": "Ghosted",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/sale/UpdateVendorResponse/", map[string]any{
		"SubmissionId": 999, "VendorResponse": "ClientRejected",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the passed resume now blocks a resubmission
	w = doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, msgResumePassed, decode(t, w)["message"])
}

func TestUpdateSubmission_ChainChange(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)

	w := doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	require.Equal(t, http.StatusCreated, w.Code)
	firstID := decode(t, w)["data"].(map[string]any)["id"]

	second := f.body()
	delete(second, "PrimeVendorId")
	w = doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", second)
	require.Equal(t, http.StatusCreated, w.Code)
	secondID := decode(t, w)["data"].(map[string]any)["id"]

	// moving the second onto the first's chain collides
	w = doJSON(t, r, http.MethodPut, "/sale/UpdateSubmission/", map[string]any{"Id": secondID, "prime_vendor": f.prime.ID})
	require.Equal(t, http.StatusConflict, w.Code)

	// clearing the first one's prime vendor lands on the second one's chain
	w = doJSON(t, r, http.MethodPut, "/sale/UpdateSubmission/", map[string]any{"Id": firstID, "prime_vendor": nil})
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPut, "/sale/UpdateSubmission/", map[string]any{"Id": firstID, "comments": "updated"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "updated", data["comments"])
	assert.Equal(t, "Prime Co", data["prime_vendor_name"])

	w = doJSON(t, r, http.MethodPut, "/sale/UpdateSubmission/", map[string]any{"Id": firstID, "consultant": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubmissionReport(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)
	other := seedConsultant(t, db, "mia@example.test", "987-65-4321", "Mia")

	fixed := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	mk := func(consultantID uint, vendorID uint, at time.Time) {
		s := models.Submission{
			ConsultantID:   consultantID,
			VendorID:       &vendorID,
			SubmissionDate: at,
			VendorResponse: models.ResponseClientSubmitted,
		}
		require.NoError(t, db.Omit(clause.Associations).Create(&s).Error)
	}
	mk(f.consultant.ID, f.vendor.ID, fixed.Add(-24*time.Hour))
	mk(f.consultant.ID, f.prime.ID, fixed.Add(-48*time.Hour))
	mk(other.ID, f.vendor.ID, fixed.Add(-72*time.Hour))
	mk(other.ID, f.prime.ID, fixed.Add(-20*24*time.Hour))

	w := doJSON(t, r, http.MethodPost, "/sale/GetSubmissionReport/", map[string]any{"Period": "week"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 3, body["total_submissions"])
	summary := body["consultant_summary"].([]any)
	require.Len(t, summary, 2)
	top := summary[0].(map[string]any)
	assert.Equal(t, "Ravi", top["consultant__first_name"])
	assert.EqualValues(t, 2, top["count"])

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionReport/", map[string]any{"Period": "month"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decode(t, w)["total_submissions"])

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionReport/", map[string]any{"Period": "decade"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Period", decode(t, w)["message"])
}

func TestGetSubmissionsByVendor(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	f := seedChain(t, db)

	w := doJSON(t, r, http.MethodPost, "/sale/AddSubmission/", f.body())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionByVendor/", map[string]any{"VendorId": f.vendor.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["vendor_submissions"], 1)

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionByVendor/", map[string]any{"VendorId": f.prime.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["vendor_submissions"], 0)

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionByVendor/", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VendorId is required", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionByVendor/", map[string]any{"VendorId": itoa(f.vendor.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["vendor_submissions"], 1)

	for _, bad := range []any{float64(f.vendor.ID) + 0.7, "abc", -1, true} {
		w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionByVendor/", map[string]any{"VendorId": bad})
		require.Equal(t, http.StatusBadRequest, w.Code, "%v", bad)
		assert.Equal(t, "Invalid VendorId", decode(t, w)["message"])
	}

	w = doJSON(t, r, http.MethodGet, "/sale/GetAllSubmissions/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["submissions"], 1)

	w = doJSON(t, r, http.MethodPost, "/sale/GetSubmissionByID/", map[string]any{"SubmissionId": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
