package flyer

import (
	"testing"
	"time"

	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProducts(n int) []models.SaleProduct {
	products := make([]models.SaleProduct, n)
	for i := range products {
		products[i] = models.SaleProduct{
			ID:            "p" + string(rune('a'+i%26)),
			ProductName:   "Product",
			OriginalPrice: decimal.NewFromFloat(39.99),
			SalePrice:     decimal.NewFromFloat(32.99),
			Category:      models.CategorySpirits,
			Position:      i,
		}
	}
	return products
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0))
	assert.Equal(t, 1, PageCount(1))
	assert.Equal(t, 1, PageCount(20))
	assert.Equal(t, 2, PageCount(21))
	assert.Equal(t, 2, PageCount(22))
	assert.Equal(t, 3, PageCount(45))
}

func TestPageProducts(t *testing.T) {
	products := makeProducts(45)

	assert.Len(t, PageProducts(products, 0), 20)
	assert.Len(t, PageProducts(products, 1), 20)
	assert.Len(t, PageProducts(products, 2), 5)
	assert.Nil(t, PageProducts(products, 3))

	// pages preserve the incoming order
	page2 := PageProducts(products, 2)
	require.Len(t, page2, 5)
	assert.Equal(t, 40, page2[0].Position)
	assert.Equal(t, 44, page2[4].Position)
}

func TestResolveColors(t *testing.T) {
	sale := models.Sale{BackgroundColor: "#F59E0B", AccentColor: "#1A1A1A"}
	theme := &models.Theme{BackgroundColor: "#DC2626", AccentColor: "#059669"}

	assert.Equal(t, Colors{Background: "#DC2626", Accent: "#059669"}, ResolveColors(sale, theme))
	assert.Equal(t, Colors{Background: "#F59E0B", Accent: "#1A1A1A"}, ResolveColors(sale, nil))
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "October 1 - October 31, 2025", FormatDateRange(start, end))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "halloween_spooktacular", Slugify("Halloween Spooktacular"))
	assert.Equal(t, "new_year_s_2026_", Slugify("New Year's 2026!"))
	assert.Equal(t, "sale", Slugify("SALE"))
	// non-ASCII letters do not survive, lowercase or not
	assert.Equal(t, "caf__sale", Slugify("Café Sale"))
	assert.Equal(t, "f_te", Slugify("Fête"))
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, time.October, 15, 9, 30, 45, 0, time.UTC)

	assert.Equal(t, "halloween_spooktacular_flyer_20251015093045.pdf", FileName("Halloween Spooktacular", now))
}

func TestParseHexColor(t *testing.T) {
	c := parseHexColor("#DC2626")
	assert.Equal(t, uint8(0xDC), c.R)
	assert.Equal(t, uint8(0x26), c.G)
	assert.Equal(t, uint8(0x26), c.B)
	assert.Equal(t, uint8(0xFF), c.A)

	black := parseHexColor("not a color")
	assert.Equal(t, uint8(0), black.R)
	assert.Equal(t, uint8(0xFF), black.A)
}
