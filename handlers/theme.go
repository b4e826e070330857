package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/firebase"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/utils"
	"github.com/volatiletech/null"
)

type themeRequest struct {
	Name            string      `json:"name"`
	BackgroundColor string      `json:"backgroundColor"`
	AccentColor     string      `json:"accentColor"`
	HeaderImageURL  null.String `json:"headerImageUrl"`
}

func (req *themeRequest) validate() error {
	if req.Name == "" {
		return errors.New("theme name is required")
	}
	if req.BackgroundColor == "" || req.AccentColor == "" {
		return errors.New("theme colors are required")
	}
	return nil
}

func GetAllThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := dbHelpers.GetAllThemes()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get theme entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, themes)
}

func CreateTheme(w http.ResponseWriter, r *http.Request) {
	var reqBody themeRequest
	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if err := reqBody.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
		return
	}

	theme, err := dbHelpers.InsertTheme(reqBody.Name, reqBody.BackgroundColor, reqBody.AccentColor, reqBody.HeaderImageURL)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to store theme entry")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, theme)
}

func UpdateTheme(w http.ResponseWriter, r *http.Request) {
	themeID := chi.URLParam(r, "themeId")

	var reqBody themeRequest
	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if err := reqBody.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
		return
	}

	theme, err := dbHelpers.UpdateTheme(themeID, reqBody.Name, reqBody.BackgroundColor, reqBody.AccentColor, reqBody.HeaderImageURL)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Theme not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update theme entry")
		return
	}
	utils.RespondJSON(w, http.StatusOK, theme)
}

func DeleteTheme(w http.ResponseWriter, r *http.Request) {
	themeID := chi.URLParam(r, "themeId")

	if err := dbHelpers.DeleteTheme(themeID); err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Theme not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete theme entry")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UploadThemeHeader stores a theme header image and returns its retrieval URL.
// The path carries the theme name and a timestamp so re-uploads never collide.
func UploadThemeHeader(w http.ResponseWriter, r *http.Request) {
	themeName := r.FormValue("themeName")
	if themeName == "" {
		themeName = "theme"
	}

	file, fileBytes, uploadedFileName, err := utils.ReadFromFile(r, string(models.ThemeHeader))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed in reading image file")
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed in closing file")
			return
		}
	}()

	path := fmt.Sprintf("%s-%d.%s", themeName, time.Now().Unix(), utils.FileExtension(uploadedFileName))
	if err := firebase.Upload(models.ThemeHeadersBucket, path, fileBytes); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed in uploading image")
		return
	}

	url, err := firebase.GetURL(&models.Image{Bucket: models.ThemeHeadersBucket, Path: path})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed in getting image URL")
		return
	}

	response := struct {
		ImageURL string `json:"imageURL"`
	}{
		ImageURL: url,
	}
	utils.RespondJSON(w, http.StatusOK, response)
}
