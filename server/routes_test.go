package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myliquor/myliquor-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRoute(t *testing.T) {
	srv := SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
}

func TestSiteInfoRoute(t *testing.T) {
	srv := SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/site/info", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var info models.StoreInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "MY LIQUOR", info.BusinessName)
	assert.NotEmpty(t, info.Hours)
}

func TestSiteLocationsRoute(t *testing.T) {
	srv := SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/site/locations", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var locations []models.Location
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&locations))
	require.NotEmpty(t, locations)
	assert.Contains(t, locations[0].Address, "Drayton Valley")
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	srv := SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sale", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventStreamRejectsUnknownTable(t *testing.T) {
	srv := SetupRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/events/orders", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
