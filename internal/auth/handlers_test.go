package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versekeeper/internal/auth"
	"versekeeper/internal/config"
	"versekeeper/internal/database"
)

func setupAuthServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)

	cfg := config.Auth{
		SessionLifetime:  time.Hour,
		SecureCookies:    false,
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	}

	sessions, err := auth.NewSessionManager(sqlDB, cfg)
	require.NoError(t, err)

	service := auth.NewService(db)
	controller := auth.NewAuthController(service, sessions, cfg, nil)
	t.Cleanup(controller.Stop)

	router := gin.New()
	router.Use(sessions.SessionLoadSave())
	controller.RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	return server, client
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestRegisterEndpoint_CreatesSessionCookie(t *testing.T) {
	server, client := setupAuthServer(t)

	resp := postJSON(t, client, server.URL+"/api/auth/register", map[string]string{
		"name":  "Jane",
		"phone": "+15550001111",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		User struct {
			ID    string `json:"id"`
			Phone string `json:"phone"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.User.ID)

	// The session cookie from registration authenticates follow-up calls.
	sessionResp, err := client.Get(server.URL + "/api/auth/session")
	require.NoError(t, err)
	defer sessionResp.Body.Close()
	assert.Equal(t, http.StatusOK, sessionResp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	server, client := setupAuthServer(t)

	resp := postJSON(t, client, server.URL+"/api/auth/register", map[string]string{
		"name":  "Jane",
		"phone": "+15550001111",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, server.URL+"/api/auth/login", map[string]string{
		"phone": "+1 (555) 000-1111",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginEndpoint_UnknownPhone(t *testing.T) {
	server, client := setupAuthServer(t)

	resp := postJSON(t, client, server.URL+"/api/auth/login", map[string]string{
		"phone": "+15559999999",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginEndpoint_RateLimited(t *testing.T) {
	server, client := setupAuthServer(t)

	// Burn through the three allowed attempts against an unknown number.
	for i := 0; i < 3; i++ {
		resp := postJSON(t, client, server.URL+"/api/auth/login", map[string]string{
			"phone": "+15559999999",
		})
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp := postJSON(t, client, server.URL+"/api/auth/login", map[string]string{
		"phone": "+15559999999",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestLogoutEndpoint(t *testing.T) {
	server, client := setupAuthServer(t)

	resp := postJSON(t, client, server.URL+"/api/auth/register", map[string]string{
		"name":  "Jane",
		"phone": "+15550001111",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, server.URL+"/api/auth/logout", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sessionResp, err := client.Get(server.URL + "/api/auth/session")
	require.NoError(t, err)
	defer sessionResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, sessionResp.StatusCode)
}

func TestRegisterEndpoint_DuplicatePhone(t *testing.T) {
	server, client := setupAuthServer(t)

	resp := postJSON(t, client, server.URL+"/api/auth/register", map[string]string{
		"name":  "Jane",
		"phone": "+15550001111",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, server.URL+"/api/auth/register", map[string]string{
		"name":  "John",
		"phone": "+15550001111",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
