// Package flyer turns a sale and its ordered product list into a paginated
// A4 print flyer: each page is laid out and rasterized to a bitmap, and the
// bitmaps are packed into a PDF.
package flyer

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/myliquor/myliquor-server/models"
)

const (
	// ProductsPerPage is the fixed page capacity: GridColumns x GridRows.
	ProductsPerPage = 20
	GridColumns     = 5
	GridRows        = 4

	// A4 portrait, the only supported output format.
	A4WidthMM  = 210.0
	A4HeightMM = 297.0

	// Base page raster is A4 at 96dpi. CaptureScale supersamples it for
	// print fidelity; 2x keeps a page frame under ~15MB decoded.
	PageWidthPx  = 794
	PageHeightPx = 1123
	CaptureScale = 2

	// JPEGQuality trades frame size against compression artifacts on the
	// price pills; 95 is visually lossless at flyer text sizes.
	JPEGQuality = 95

	// ChunkSize bounds how many page frames are held decoded at once.
	ChunkSize = 2

	// MaxAttempts bounds the retry loop of the hardened export.
	MaxAttempts = 3

	// RetryBaseDelay scales linearly with the attempt number.
	RetryBaseDelay = 2 * time.Second

	// ImageProbeTimeout is how long a product image may take to load
	// before it is dropped from the capture.
	ImageProbeTimeout = 10 * time.Second

	// SavingsBadgeColor is the fixed alert red of the SAVE pill.
	SavingsBadgeColor = "#DC2626"

	BusinessName = "MY LIQUOR"
)

// PageCount returns how many pages a product count fills.
func PageCount(productCount int) int {
	if productCount <= 0 {
		return 0
	}
	return (productCount + ProductsPerPage - 1) / ProductsPerPage
}

// PageProducts returns the slice of products shown on a 0-based page index.
func PageProducts(products []models.SaleProduct, pageIndex int) []models.SaleProduct {
	start := pageIndex * ProductsPerPage
	if start >= len(products) {
		return nil
	}
	end := start + ProductsPerPage
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// Colors is the resolved palette for one render.
type Colors struct {
	Background string
	Accent     string
}

// ResolveColors picks the theme record's palette when one loaded, otherwise
// the sale's own stored colors. Resolved once per render, not per product.
func ResolveColors(sale models.Sale, theme *models.Theme) Colors {
	if theme != nil {
		return Colors{Background: theme.BackgroundColor, Accent: theme.AccentColor}
	}
	return Colors{Background: sale.BackgroundColor, Accent: sale.AccentColor}
}

// FormatDateRange renders the header date line, e.g.
// "October 1 - October 31, 2025".
func FormatDateRange(start, end time.Time) string {
	return start.Format("January 2") + " - " + end.Format("January 2, 2006")
}

// Slugify lowercases a sale name and replaces everything outside ASCII
// a-z0-9 with an underscore, accented letters included.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// FileName builds the export file name: <slug>_flyer_<compact timestamp>.pdf
func FileName(saleName string, now time.Time) string {
	return fmt.Sprintf("%s_flyer_%s.pdf", Slugify(saleName), now.Format("20060102150405"))
}

// parseHexColor reads a #RRGGBB color, falling back to black on bad input.
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) == 7 && s[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			c.R, c.G, c.B = r, g, b
		}
	}
	return c
}
