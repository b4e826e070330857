package models

import (
	"time"

	"github.com/volatiletech/null"
)

type SaleTheme string

const (
	ThemeEaster      SaleTheme = "easter"
	ThemeHalloween   SaleTheme = "halloween"
	ThemeVictoriaDay SaleTheme = "victoria-day"
	ThemeChristmas   SaleTheme = "christmas"
	ThemeGeneral     SaleTheme = "general"
)

// ThemeColors are the built-in palettes used when a sale carries only a
// theme tag and no theme record.
var ThemeColors = map[SaleTheme]struct {
	Background string
	Accent     string
}{
	ThemeEaster:      {Background: "#FF8C00", Accent: "#8B4513"},
	ThemeHalloween:   {Background: "#FF8C00", Accent: "#000000"},
	ThemeVictoriaDay: {Background: "#DC2626", Accent: "#FFFFFF"},
	ThemeChristmas:   {Background: "#DC2626", Accent: "#059669"},
	ThemeGeneral:     {Background: "#F59E0B", Accent: "#1A1A1A"},
}

func IsValidSaleTheme(theme string) bool {
	_, ok := ThemeColors[SaleTheme(theme)]
	return ok
}

type Sale struct {
	ID              string      `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Theme           SaleTheme   `json:"theme" db:"theme"`
	ThemeID         null.String `json:"themeId" db:"theme_id"`
	StartDate       time.Time   `json:"startDate" db:"start_date"`
	EndDate         time.Time   `json:"endDate" db:"end_date"`
	IsActive        bool        `json:"isActive" db:"is_active"`
	HeaderImage     null.String `json:"headerImage" db:"header_image"`
	BackgroundColor string      `json:"backgroundColor" db:"background_color"`
	AccentColor     string      `json:"accentColor" db:"accent_color"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// SaleWithTheme is a sale joined with its theme record, when one is set.
type SaleWithTheme struct {
	Sale
	ThemeRecord *Theme `json:"themeRecord,omitempty"`
}
