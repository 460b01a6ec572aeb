package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"versekeeper/internal/entities"
)

func TestDebug_Listings(t *testing.T) {
	ts := setupServer(t, true)
	client := ts.newClient(t)
	register(t, ts, client, "Jane", "+15550001111")
	createVerse(t, ts, client, johnThreeSixteenBody())

	resp, data := doJSON(t, client, http.MethodGet, ts.server.URL+"/debug/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var usersBody struct {
		Count int             `json:"count"`
		Users []entities.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(data, &usersBody))
	assert.Equal(t, 1, usersBody.Count)

	resp, data = doJSON(t, client, http.MethodGet, ts.server.URL+"/debug/verses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var versesBody struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(data, &versesBody))
	assert.Equal(t, 1, versesBody.Count)
}

func TestDebug_Reset(t *testing.T) {
	ts := setupServer(t, true)
	client := ts.newClient(t)
	register(t, ts, client, "Jane", "+15550001111")
	createVerse(t, ts, client, johnThreeSixteenBody())

	resp, _ := doJSON(t, client, http.MethodPost, ts.server.URL+"/debug/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users, err := ts.db.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, users)

	verses, err := ts.db.ListAllVerses()
	require.NoError(t, err)
	assert.Empty(t, verses)

	// The wiped user's session no longer authenticates.
	resp, _ = doJSON(t, client, http.MethodGet, ts.server.URL+"/api/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDebug_Export(t *testing.T) {
	ts := setupServer(t, true)
	client := ts.newClient(t)
	register(t, ts, client, "Jane", "+15550001111")
	createVerse(t, ts, client, johnThreeSixteenBody())

	resp, data := doJSON(t, client, http.MethodPost, ts.server.URL+"/debug/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var body struct {
		Filename string `json:"filename"`
		Users    int    `json:"users"`
		Verses   int    `json:"verses"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Regexp(t, `\.json$`, body.Filename)
	assert.Equal(t, 1, body.Users)
	assert.Equal(t, 1, body.Verses)
}
