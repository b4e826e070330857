package optimistic

import (
	"strings"

	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

// ProductPatch carries the fields of a partial product update. Unset fields
// leave the record untouched.
type ProductPatch struct {
	ProductName   null.String      `json:"productName"`
	ProductImage  null.String      `json:"productImage"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	Size          null.String      `json:"size"`
	Category      null.String      `json:"category"`
	BadgeText     null.String      `json:"badgeText"`
}

// Apply merges the patch into a product record.
func (patch ProductPatch) Apply(product *models.SaleProduct) {
	if patch.ProductName.Valid {
		product.ProductName = patch.ProductName.String
	}
	if patch.ProductImage.Valid {
		product.ProductImage = patch.ProductImage
	}
	if patch.OriginalPrice != nil {
		product.OriginalPrice = *patch.OriginalPrice
	}
	if patch.SalePrice != nil {
		product.SalePrice = *patch.SalePrice
	}
	if patch.Size.Valid {
		product.Size = patch.Size
	}
	if patch.Category.Valid {
		product.Category = models.ProductCategory(patch.Category.String)
	}
	if patch.BadgeText.Valid {
		product.BadgeText = patch.BadgeText
	}
}

// RefineMessage turns a backend error into user-facing wording. Messages
// mentioning row-level security become a permission notice, constraint
// violations a validation notice; anything else passes through raw.
func RefineMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "row-level security"):
		return "You do not have permission to make this change"
	case strings.Contains(msg, "violates"):
		return "The change conflicts with a data rule. Check the values and try again"
	default:
		return msg
	}
}
