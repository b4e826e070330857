package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/myliquor/myliquor-server/flyer"
	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastGenerator() *flyer.Generator {
	g := flyer.NewGenerator()
	g.ChunkPause = time.Millisecond
	g.RetryBaseDelay = time.Millisecond
	return g
}

func flyerSale() models.Sale {
	return models.Sale{
		ID:              "sale-1",
		Name:            "Halloween Spooktacular",
		StartDate:       time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC),
		BackgroundColor: "#FF8C00",
		AccentColor:     "#000000",
	}
}

func flyerProducts(n int) []models.SaleProduct {
	products := make([]models.SaleProduct, n)
	for i := range products {
		products[i] = models.SaleProduct{
			ID:            "p1",
			SaleID:        "sale-1",
			ProductName:   "Whiskey",
			OriginalPrice: decimal.NewFromFloat(39.99),
			SalePrice:     decimal.NewFromFloat(32.99),
			Category:      models.CategorySpirits,
			Position:      i,
		}
	}
	return products
}

func TestStreamFlyerPDFSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/sale/sale-1/flyer", nil)

	streamFlyerPDF(rec, req, fastGenerator(), flyerSale(), flyerProducts(2), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "halloween_spooktacular_flyer_")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestStreamFlyerPDFFailureRespondsWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/sale/sale-1/flyer", nil)

	// no products makes every generation attempt fail
	streamFlyerPDF(rec, req, fastGenerator(), flyerSale(), nil, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.NotEqual(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/sale/sale-1/print")
	assert.False(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}
