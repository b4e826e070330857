package pricing

import (
	"fmt"
	"math"

	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
)

// Result is the outcome of validating a proposed price pair. Savings and
// SavingsPercent are computed regardless of validity.
type Result struct {
	IsValid        bool   `json:"isValid"`
	Savings        string `json:"savings"`
	SavingsPercent int    `json:"savingsPercent"`
	Error          string `json:"error,omitempty"`
	Warning        string `json:"warning,omitempty"`
	Suggestion     string `json:"suggestion,omitempty"`
}

// CategoryRules bound the discount range and the expected shelf-price range
// for one product category.
type CategoryRules struct {
	MinDiscount int
	MaxDiscount int
	MinPrice    int
	MaxPrice    int
}

var categoryRules = map[models.ProductCategory]CategoryRules{
	models.CategorySpirits:     {MinDiscount: 5, MaxDiscount: 50, MinPrice: 10, MaxPrice: 2000},
	models.CategoryWine:        {MinDiscount: 10, MaxDiscount: 60, MinPrice: 8, MaxPrice: 500},
	models.CategoryBeer:        {MinDiscount: 5, MaxDiscount: 40, MinPrice: 1, MaxPrice: 100},
	models.CategoryCoolers:     {MinDiscount: 5, MaxDiscount: 45, MinPrice: 2, MaxPrice: 50},
	models.CategoryMixers:      {MinDiscount: 10, MaxDiscount: 50, MinPrice: 1, MaxPrice: 20},
	models.CategoryAccessories: {MinDiscount: 15, MaxDiscount: 70, MinPrice: 5, MaxPrice: 200},
}

// RulesFor returns the policy for a category, defaulting to spirits for an
// unknown tag.
func RulesFor(category models.ProductCategory) CategoryRules {
	if rules, ok := categoryRules[category]; ok {
		return rules
	}
	return categoryRules[models.CategorySpirits]
}

var charmEndings = map[string]bool{"99": true, "95": true, "89": true, "49": true}

// aggressiveDiscountRatio: sale/original ratios below this trigger a
// double-check warning.
const aggressiveDiscountRatio = 0.2

// Validate checks a proposed original/sale price pair against the category
// policy. Pure function: same inputs always produce the same Result.
func Validate(originalPrice, salePrice decimal.Decimal, category models.ProductCategory) Result {
	savings := originalPrice.Sub(salePrice)
	rules := RulesFor(category)

	isValid := true
	var errMsg, warning, suggestion string

	switch {
	case salePrice.LessThanOrEqual(decimal.Zero):
		isValid = false
		errMsg = "Sale price must be greater than $0"
	case salePrice.GreaterThanOrEqual(originalPrice):
		isValid = false
		errMsg = "Sale price must be lower than original price"
	case originalPrice.LessThanOrEqual(decimal.Zero):
		isValid = false
		errMsg = "Original price must be greater than $0"
	case originalPrice.LessThan(decimal.NewFromInt(int64(rules.MinPrice))):
		isValid = false
		errMsg = fmt.Sprintf("%s products should be priced at least $%d", category, rules.MinPrice)
	case originalPrice.GreaterThan(decimal.NewFromInt(int64(rules.MaxPrice))):
		warning = fmt.Sprintf("Unusually high price for %s (typically under $%d)", category, rules.MaxPrice)
	}

	if isValid {
		discountPercent := percentOf(savings, originalPrice)

		if discountPercent < float64(rules.MinDiscount) {
			warning = fmt.Sprintf("Small discount for %s - consider at least %d%% off", category, rules.MinDiscount)
			suggestion = fmt.Sprintf("Try $%s for %d%% off", priceAtDiscount(originalPrice, rules.MinDiscount), rules.MinDiscount)
		} else if discountPercent > float64(rules.MaxDiscount) {
			isValid = false
			errMsg = fmt.Sprintf("Discount too high for %s (max %d%%)", category, rules.MaxDiscount)
			suggestion = fmt.Sprintf("Maximum recommended: $%s", priceAtDiscount(originalPrice, rules.MaxDiscount))
		}

		if isValid && discountPercent >= float64(rules.MinDiscount) && discountPercent <= float64(rules.MaxDiscount) {
			fixed := salePrice.StringFixed(2)
			if !charmEndings[fixed[len(fixed)-2:]] {
				suggestion = "Consider ending price in .99 or .95 for better appeal"
			}
		}

		if isValid {
			ratio := salePrice.InexactFloat64() / originalPrice.InexactFloat64()
			if ratio < aggressiveDiscountRatio {
				warning = "Very aggressive discount - double-check pricing accuracy"
			} else if isWholeDollar(salePrice) && salePrice.GreaterThan(decimal.NewFromInt(20)) {
				suggestion = fmt.Sprintf("Consider psychological pricing (e.g., $%s)", salePrice.Sub(decimal.NewFromFloat(0.01)).StringFixed(2))
			}
		}
	}

	savingsPercent := 0
	if originalPrice.GreaterThan(decimal.Zero) {
		savingsPercent = int(math.Round(percentOf(savings, originalPrice)))
	}

	return Result{
		IsValid:        isValid,
		Savings:        savings.StringFixed(2),
		SavingsPercent: savingsPercent,
		Error:          errMsg,
		Warning:        warning,
		Suggestion:     suggestion,
	}
}

func percentOf(part, whole decimal.Decimal) float64 {
	return part.InexactFloat64() / whole.InexactFloat64() * 100
}

func priceAtDiscount(originalPrice decimal.Decimal, discountPercent int) string {
	factor := decimal.NewFromInt(100 - int64(discountPercent)).Div(decimal.NewFromInt(100))
	return originalPrice.Mul(factor).StringFixed(2)
}

func isWholeDollar(price decimal.Decimal) bool {
	return price.Sub(price.Round(0)).Abs().LessThan(decimal.NewFromFloat(0.01))
}
