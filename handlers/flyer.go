package handlers

import (
	"bytes"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/flyer"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/utils"
	"github.com/sirupsen/logrus"
)

// ExportFlyer renders the sale's product grid to an A4 PDF and streams it
// back as a download
func ExportFlyer(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	saleWithTheme, err := dbHelpers.GetSaleWithTheme(saleID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Sale not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get sale entry")
		return
	}

	products, err := dbHelpers.GetSaleProducts(saleID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get product entries")
		return
	}
	if len(products) == 0 {
		utils.RespondError(w, http.StatusBadRequest, nil, "Sale has no products to put on a flyer")
		return
	}

	streamFlyerPDF(w, r, flyer.NewGenerator(), saleWithTheme.Sale, products, saleWithTheme.ThemeRecord)
}

// streamFlyerPDF generates the PDF into memory, then sends it as a download.
// Nothing is written to the client until generation succeeded, so a failed
// export can still respond with a proper error pointing at the print view.
func streamFlyerPDF(w http.ResponseWriter, r *http.Request, generator *flyer.Generator, sale models.Sale, products []models.SaleProduct, theme *models.Theme) {
	var pdf bytes.Buffer
	fileName, err := generator.Export(r.Context(), sale, products, theme, &pdf)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err,
			"Failed to generate the flyer PDF. Open the print view at /api/sale/"+sale.ID+"/print instead")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	if _, err := pdf.WriteTo(w); err != nil {
		logrus.Errorf("Failed to stream flyer for sale %s with error: %+v", sale.ID, err)
	}
}

// PrintFlyer serves the browser-printable HTML rendition of the flyer, used
// as the fallback when PDF generation fails
func PrintFlyer(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	saleWithTheme, err := dbHelpers.GetSaleWithTheme(saleID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Sale not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get sale entry")
		return
	}

	products, err := dbHelpers.GetSaleProducts(saleID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get product entries")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := flyer.RenderPrintHTML(w, saleWithTheme.Sale, products, saleWithTheme.ThemeRecord); err != nil {
		logrus.Errorf("Failed to render print view for sale %s with error: %+v", saleID, err)
	}
}
