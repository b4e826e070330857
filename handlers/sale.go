package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/firebase"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/utils"
	"github.com/sirupsen/logrus"
	"github.com/volatiletech/null"
)

type saleRequest struct {
	Name            string      `json:"name"`
	Theme           string      `json:"theme"`
	ThemeID         null.String `json:"themeId"`
	StartDate       time.Time   `json:"startDate"`
	EndDate         time.Time   `json:"endDate"`
	HeaderImage     null.String `json:"headerImage"`
	BackgroundColor string      `json:"backgroundColor"`
	AccentColor     string      `json:"accentColor"`
}

func (req *saleRequest) validate() error {
	if req.Name == "" {
		return errors.New("sale name is required")
	}
	if req.Theme == "" {
		req.Theme = string(models.ThemeGeneral)
	}
	if !models.IsValidSaleTheme(req.Theme) {
		return errors.New("unknown sale theme: " + req.Theme)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return errors.New("start and end dates are required")
	}
	if req.EndDate.Before(req.StartDate) {
		return errors.New("end date must not be before start date")
	}
	if req.BackgroundColor == "" || req.AccentColor == "" {
		colors := models.ThemeColors[models.SaleTheme(req.Theme)]
		if req.BackgroundColor == "" {
			req.BackgroundColor = colors.Background
		}
		if req.AccentColor == "" {
			req.AccentColor = colors.Accent
		}
	}
	return nil
}

func GetAllSales(w http.ResponseWriter, r *http.Request) {
	sales, err := dbHelpers.GetAllSales()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get sale entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sales)
}

// GetActiveSale returns the live sale with its products, for the public site
func GetActiveSale(w http.ResponseWriter, r *http.Request) {
	sale, err := dbHelpers.GetActiveSale()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get active sale")
		return
	}
	if sale == nil {
		utils.RespondJSON(w, http.StatusOK, nil)
		return
	}

	products, err := dbHelpers.GetSaleProducts(sale.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get sale products")
		return
	}

	response := struct {
		Sale     models.Sale          `json:"sale"`
		Products []models.SaleProduct `json:"products"`
	}{
		Sale:     *sale,
		Products: products,
	}
	utils.RespondJSON(w, http.StatusOK, response)
}

func GetSaleWithTheme(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	sale, err := dbHelpers.GetSaleWithTheme(saleID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Sale not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get sale")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sale)
}

func CreateSale(w http.ResponseWriter, r *http.Request) {
	var reqBody saleRequest
	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if err := reqBody.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
		return
	}

	sale, err := dbHelpers.InsertSale(reqBody.Name, models.SaleTheme(reqBody.Theme), reqBody.ThemeID,
		reqBody.StartDate, reqBody.EndDate, reqBody.HeaderImage, reqBody.BackgroundColor, reqBody.AccentColor)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to store sale entry")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, sale)
}

func UpdateSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	var reqBody saleRequest
	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if err := reqBody.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
		return
	}

	sale, err := dbHelpers.UpdateSale(saleID, reqBody.Name, models.SaleTheme(reqBody.Theme), reqBody.ThemeID,
		reqBody.StartDate, reqBody.EndDate, reqBody.HeaderImage, reqBody.BackgroundColor, reqBody.AccentColor)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Sale not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update sale entry")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sale)
}

// ActivateSale makes one sale live and every other sale inactive
func ActivateSale(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	sale, err := dbHelpers.ActivateSale(saleID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Sale not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to activate sale")
		return
	}

	if err := firebase.SendSaleActivatedNotification(*sale); err != nil {
		logrus.Errorf("Failed to send sale activation notification: %v", err)
	}
	utils.RespondJSON(w, http.StatusOK, sale)
}
