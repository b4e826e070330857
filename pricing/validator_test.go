package pricing

import (
	"sync"
	"testing"
	"time"

	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateHappyPath(t *testing.T) {
	result := Validate(price("39.99"), price("32.99"), models.CategorySpirits)

	require.True(t, result.IsValid)
	assert.Equal(t, "7.00", result.Savings)
	assert.Equal(t, 18, result.SavingsPercent)
	assert.Empty(t, result.Error)
	assert.Empty(t, result.Warning)
	assert.Empty(t, result.Suggestion)
}

func TestValidateRejectsNonPositiveSalePrice(t *testing.T) {
	result := Validate(price("39.99"), decimal.Zero, models.CategorySpirits)

	require.False(t, result.IsValid)
	assert.Equal(t, "Sale price must be greater than $0", result.Error)
	assert.Equal(t, "39.99", result.Savings)
	assert.Equal(t, 100, result.SavingsPercent)
}

func TestValidateRejectsSaleAboveOriginal(t *testing.T) {
	result := Validate(price("10.00"), price("15.00"), models.CategoryBeer)

	require.False(t, result.IsValid)
	assert.Equal(t, "Sale price must be lower than original price", result.Error)
	assert.Equal(t, "-5.00", result.Savings)
}

func TestValidateRejectsBelowCategoryFloor(t *testing.T) {
	result := Validate(price("8.00"), price("5.00"), models.CategorySpirits)

	require.False(t, result.IsValid)
	assert.Equal(t, "spirits products should be priced at least $10", result.Error)
}

func TestValidateWarnsAboveCategoryCeiling(t *testing.T) {
	result := Validate(price("150.00"), price("119.99"), models.CategoryBeer)

	require.True(t, result.IsValid)
	assert.Equal(t, "Unusually high price for beer (typically under $100)", result.Warning)
}

func TestValidateSmallDiscountSuggestion(t *testing.T) {
	result := Validate(price("100.00"), price("94.99"), models.CategoryWine)

	require.True(t, result.IsValid)
	assert.Equal(t, "Small discount for wine - consider at least 10% off", result.Warning)
	assert.Equal(t, "Try $90.00 for 10% off", result.Suggestion)
}

func TestValidateRejectsExcessiveDiscount(t *testing.T) {
	result := Validate(price("100.00"), price("40.00"), models.CategorySpirits)

	require.False(t, result.IsValid)
	assert.Equal(t, "Discount too high for spirits (max 50%)", result.Error)
	assert.Equal(t, "Maximum recommended: $50.00", result.Suggestion)
	assert.Equal(t, 60, result.SavingsPercent)
}

func TestValidateCharmEndingSuggestion(t *testing.T) {
	result := Validate(price("10.00"), price("8.50"), models.CategoryBeer)

	require.True(t, result.IsValid)
	assert.Equal(t, "Consider ending price in .99 or .95 for better appeal", result.Suggestion)
}

func TestValidateCharmEndingsAccepted(t *testing.T) {
	for _, sale := range []string{"32.99", "32.95", "32.89", "32.49"} {
		result := Validate(price("39.99"), price(sale), models.CategorySpirits)
		require.True(t, result.IsValid, sale)
		assert.Empty(t, result.Suggestion, sale)
	}
}

func TestValidateWholeDollarAboveTwenty(t *testing.T) {
	result := Validate(price("100.00"), price("75.00"), models.CategorySpirits)

	require.True(t, result.IsValid)
	assert.Equal(t, "Consider psychological pricing (e.g., $74.99)", result.Suggestion)
}

func TestValidateWholeDollarAtOrUnderTwentyKeepsCharmSuggestion(t *testing.T) {
	result := Validate(price("25.00"), price("18.00"), models.CategoryBeer)

	require.True(t, result.IsValid)
	assert.Equal(t, "Consider ending price in .99 or .95 for better appeal", result.Suggestion)
}

func TestValidateUnknownCategoryFallsBackToSpirits(t *testing.T) {
	known := Validate(price("39.99"), price("32.99"), models.CategorySpirits)
	unknown := Validate(price("39.99"), price("32.99"), models.ProductCategory("snacks"))

	assert.Equal(t, known.IsValid, unknown.IsValid)
	assert.Equal(t, known.Savings, unknown.Savings)
	assert.Equal(t, known.SavingsPercent, unknown.SavingsPercent)
}

func TestValidateIsDeterministic(t *testing.T) {
	first := Validate(price("49.99"), price("39.99"), models.CategoryWine)
	second := Validate(price("49.99"), price("39.99"), models.CategoryWine)

	assert.Equal(t, first, second)
}

func TestValidateCategoryFloors(t *testing.T) {
	cases := []struct {
		category models.ProductCategory
		original string
		err      string
	}{
		{models.CategorySpirits, "9.99", "spirits products should be priced at least $10"},
		{models.CategoryWine, "7.99", "wine products should be priced at least $8"},
		{models.CategoryCoolers, "1.99", "coolers products should be priced at least $2"},
		{models.CategoryAccessories, "4.99", "accessories products should be priced at least $5"},
	}

	for _, tc := range cases {
		result := Validate(price(tc.original), price("0.50"), tc.category)
		require.False(t, result.IsValid, tc.category)
		assert.Equal(t, tc.err, result.Error, tc.category)
	}
}

func TestRulesFor(t *testing.T) {
	assert.Equal(t, CategoryRules{MinDiscount: 10, MaxDiscount: 60, MinPrice: 8, MaxPrice: 500}, RulesFor(models.CategoryWine))
	assert.Equal(t, RulesFor(models.CategorySpirits), RulesFor(models.ProductCategory("unknown")))
}

func TestDebouncerCoalescesRapidInput(t *testing.T) {
	var mu sync.Mutex
	results := make([]Result, 0)

	debouncer := NewDebouncer(20*time.Millisecond, func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	})
	defer debouncer.Stop()

	debouncer.Submit(price("39.99"), price("35.00"), models.CategorySpirits)
	debouncer.Submit(price("39.99"), price("34.00"), models.CategorySpirits)
	debouncer.Submit(price("39.99"), price("32.99"), models.CategorySpirits)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 1)
	assert.Equal(t, "7.00", results[0].Savings)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	called := false

	debouncer := NewDebouncer(20*time.Millisecond, func(Result) {
		mu.Lock()
		called = true
		mu.Unlock()
	})

	debouncer.Submit(price("39.99"), price("32.99"), models.CategorySpirits)
	debouncer.Stop()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, called)
}
