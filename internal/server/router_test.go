package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vendor-tracker/internal/config"
	"vendor-tracker/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedAdmin(db, "admin", "s3cret-pass"))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})

	return NewRouter(&config.Config{
		SessionSecret: "session-secret-for-tests",
		JWTSecret:     "jwt-secret-for-tests",
		JWTAccessTTL:  time.Minute,
		JWTRefreshTTL: time.Hour,
	})
}

func request(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, username, password string) (access, refresh string) {
	t.Helper()
	w := request(t, r, http.MethodPost, "/api/token/", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Access, body.Refresh
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := setupServer(t)

	w := request(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = request(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_RequiresAuth(t *testing.T) {
	r := setupServer(t)

	w := request(t, r, http.MethodGet, "/vendor/GetVendor/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, r, http.MethodPost, "/api/token/", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LoginAndUse(t *testing.T) {
	r := setupServer(t)
	access, refresh := login(t, r, "admin", "s3cret-pass")

	w := request(t, r, http.MethodGet, "/api/me/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	w = request(t, r, http.MethodPost, "/vendor/AddVendor/", access, map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(t, r, http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	// refresh tokens are not accepted as access tokens
	w = request(t, r, http.MethodGet, "/vendor/GetVendor/", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminOnlyDeletes(t *testing.T) {
	r := setupServer(t)
	adminToken, _ := login(t, r, "admin", "s3cret-pass")

	w := request(t, r, http.MethodPost, "/api/register/", adminToken,
		map[string]string{"username": "viewer1", "password": "viewer-pass", "role": "viewer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(t, r, http.MethodPost, "/vendor/AddVendor/", adminToken, map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)

	viewerToken, _ := login(t, r, "viewer1", "viewer-pass")
	w = request(t, r, http.MethodDelete, "/vendor/DeleteVendor/1/", viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(t, r, http.MethodDelete, "/vendor/DeleteVendor/1/", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
