package handlers

import (
	"net/http"

	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/utils"
)

// GetStoreInfo serves the static business copy for the public site
func GetStoreInfo(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, models.Info)
}

// GetLocations serves the store location list for the public site
func GetLocations(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, models.Locations)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "server is running"})
}
