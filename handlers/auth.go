package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/middlewares"
	"github.com/myliquor/myliquor-server/utils"
)

// AdminLogin exchanges credentials for a session token
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	reqBody := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}

	admin, err := dbHelpers.GetAdminByEmail(reqBody.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusUnauthorized, err, "Invalid email or password")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get admin account")
		return
	}

	if admin.Password != utils.HashString(reqBody.Password) {
		utils.RespondError(w, http.StatusUnauthorized, errors.New("password mismatch"), "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(admin.Email)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to create session token")
		return
	}

	response := struct {
		Token string `json:"token"`
	}{
		Token: token,
	}
	utils.RespondJSON(w, http.StatusOK, response)
}

// RegisterDeviceToken stores a push-notification token for the logged-in admin
func RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	admin := middlewares.AdminContext(r)
	if admin == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	reqBody := struct {
		Token string `json:"token"`
	}{}

	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if reqBody.Token == "" {
		utils.RespondError(w, http.StatusBadRequest, errors.New("empty token"), "Device token can't be empty")
		return
	}

	if err := dbHelpers.StoreDeviceToken(admin.ID, reqBody.Token); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to store device token")
		return
	}
	w.WriteHeader(http.StatusOK)
}
