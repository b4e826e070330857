package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

type ProductCategory string

const (
	CategorySpirits     ProductCategory = "spirits"
	CategoryWine        ProductCategory = "wine"
	CategoryBeer        ProductCategory = "beer"
	CategoryCoolers     ProductCategory = "coolers"
	CategoryMixers      ProductCategory = "mixers"
	CategoryAccessories ProductCategory = "accessories"
)

func IsValidProductCategory(category string) bool {
	switch ProductCategory(category) {
	case CategorySpirits, CategoryWine, CategoryBeer, CategoryCoolers, CategoryMixers, CategoryAccessories:
		return true
	}
	return false
}

type SaleProduct struct {
	ID            string          `json:"id" db:"id"`
	SaleID        string          `json:"saleId" db:"sale_id"`
	ProductName   string          `json:"productName" db:"product_name"`
	ProductImage  null.String     `json:"productImage" db:"product_image"`
	OriginalPrice decimal.Decimal `json:"originalPrice" db:"original_price"`
	SalePrice     decimal.Decimal `json:"salePrice" db:"sale_price"`
	Size          null.String     `json:"size" db:"size"`
	Category      ProductCategory `json:"category" db:"category"`
	BadgeText     null.String     `json:"badgeText" db:"badge_text"`
	Position      int             `json:"position" db:"position"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// Savings is the flyer "SAVE $X.XX" amount, fixed to two decimals.
func (p SaleProduct) Savings() string {
	return p.OriginalPrice.Sub(p.SalePrice).StringFixed(2)
}
