package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"vendor-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestAddClient_DomainSnapshot(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/client/AddClient/", map[string]any{"name": "Contoso", "domain_id": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Insurance", data["domain_name"])

	var got models.Client
	require.NoError(t, db.First(&got).Error)
	require.NotNil(t, got.DomainName)
	assert.Equal(t, "Insurance", *got.DomainName)

	w = doJSON(t, r, http.MethodPost, "/client/AddClient/", map[string]any{"name": "Bad", "domain_id": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid domain_id", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/client/AddClient/", map[string]any{"city": "Dallas"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateClient_ResnapshotsDomain(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	cl := seedClient(t, db, "Fabrikam")

	w := doJSON(t, r, http.MethodPatch, "/client/UpdateClient/"+itoa(cl.ID)+"/", map[string]any{"domain_id": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Client
	require.NoError(t, db.First(&got, cl.ID).Error)
	assert.Equal(t, "Fabrikam", got.Name)
	require.NotNil(t, got.DomainName)
	assert.Equal(t, "Healthcare", *got.DomainName)
}

func TestGetDomains(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/client/domains/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var domains []models.Domain
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &domains))
	require.NotEmpty(t, domains)
	assert.Equal(t, 1, domains[0].ID)
}

func TestSearchClient(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()

	austin, dallas := "Austin", "Dallas"
	a := models.Client{Name: "Alpha", City: &austin}
	b := models.Client{Name: "Beta", City: &dallas}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	v := seedVendor(t, db, "Northwind")
	require.NoError(t, db.Omit("Vendor").Create(&models.ClientVendorLink{ClientID: b.ID, VendorID: v.ID, Role: models.RoleVendor}).Error)

	w := doJSON(t, r, http.MethodPost, "/client/SearchClient/", map[string]any{"city": "aus"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 1, body["count"])
	assert.Contains(t, w.Body.String(), "Alpha")

	w = doJSON(t, r, http.MethodPost, "/client/SearchClient/", map[string]any{"vendor_name": "north"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.EqualValues(t, 1, body["count"])
	assert.Contains(t, w.Body.String(), "Beta")

	w = doJSON(t, r, http.MethodPost, "/client/SearchClient/", map[string]any{"city": "aus", "vendor_id": v.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["count"])
}

func TestClientStats(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	a := seedClient(t, db, "One")
	seedClient(t, db, "Two")
	v := seedVendor(t, db, "V")
	require.NoError(t, db.Omit("Vendor").Create(&models.ClientVendorLink{ClientID: a.ID, VendorID: v.ID, Role: models.RoleVendor}).Error)
	require.NoError(t, db.Omit("Vendor").Create(&models.ClientVendorLink{ClientID: a.ID, VendorID: v.ID, Role: models.RolePrimeVendor}).Error)

	w := doJSON(t, r, http.MethodGet, "/client/ClientStats/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 2, body["total_clients"])
	assert.EqualValues(t, 1, body["clients_with_vendors"])
	assert.EqualValues(t, 1, body["clients_without_vendors"])
}

func TestClientAddresses(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	cl := seedClient(t, db, "Tailspin")

	w := doJSON(t, r, http.MethodPost, "/client/AddClientAddress/", map[string]any{"client": cl.ID, "city": "Reno", "address_type": "HQ"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	addrID := decode(t, w)["addrid"]

	w = doJSON(t, r, http.MethodPost, "/client/GetClientAddresses/", map[string]any{"client_id": cl.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var addrs []models.ClientAddress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addrs))
	require.Len(t, addrs, 1)
	assert.Equal(t, "Reno", *addrs[0].City)

	w = doJSON(t, r, http.MethodPost, "/client/GetClientAddresses/", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "client_id is required", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodDelete, "/client/DeleteClientAddress/", map[string]any{"addrid": addrID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Address deleted successfully", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/client/AddClientAddress/", map[string]any{"client": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteClient_NullsSubmissionClient(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	cl := seedClient(t, db, "Wingtip")
	cons := seedConsultant(t, db, "jo@example.test", "111-22-3333", "Jo")
	sub := models.Submission{ConsultantID: cons.ID, EndClientID: &cl.ID, SubmissionDate: time.Now()}
	require.NoError(t, db.Omit(clause.Associations).Create(&sub).Error)

	w := doJSON(t, r, http.MethodDelete, "/client/DeleteClient/"+itoa(cl.ID)+"/", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var got models.Submission
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Nil(t, got.EndClientID)
}

func TestDeleteClient_ChainsCollapseOntoExisting(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter()
	v := seedVendor(t, db, "Acme")
	cl := seedClient(t, db, "Contoso")
	cons := seedConsultant(t, db, "lee@example.test", "321-54-9876", "Lee")

	for _, clientID := range []*uint{&cl.ID, nil} {
		s := models.Submission{ConsultantID: cons.ID, VendorID: &v.ID, EndClientID: clientID, SubmissionDate: time.Now().UTC()}
		require.NoError(t, db.Omit(clause.Associations).Create(&s).Error)
	}

	w := doJSON(t, r, http.MethodDelete, "/client/DeleteClient/"+itoa(cl.ID)+"/", nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	var n int64
	require.NoError(t, db.Model(&models.Submission{}).Where("end_client_id IS NULL").Count(&n).Error)
	assert.EqualValues(t, 2, n)
}
