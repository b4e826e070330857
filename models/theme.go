package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/volatiletech/null"
)

type Theme struct {
	ID              string      `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	BackgroundColor string      `json:"backgroundColor" db:"background_color"`
	AccentColor     string      `json:"accentColor" db:"accent_color"`
	HeaderImageURL  null.String `json:"headerImageUrl" db:"header_image_url"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// LayoutConfig describes a flyer template grid. Stored as jsonb.
type LayoutConfig struct {
	Columns      int `json:"columns"`
	Rows         int `json:"rows"`
	HeaderHeight int `json:"headerHeight"`
	FooterHeight int `json:"footerHeight"`
}

func (l LayoutConfig) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *LayoutConfig) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return errors.New("layout config: expected []byte from database")
	}
	return json.Unmarshal(b, l)
}

// FlyerTemplate is declared for the themes tooling but no rendering path
// reads it yet; the flyer package uses its own fixed 5x4 layout.
type FlyerTemplate struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Theme        SaleTheme    `json:"theme" db:"theme"`
	LayoutConfig LayoutConfig `json:"layoutConfig" db:"layout_config"`
	IsDefault    bool         `json:"isDefault" db:"is_default"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}
