package cart

import (
	"math"

	"backend/internal/models"
)

// EffectiveUnitPrice returns the price one unit of the item sells for.
// Wholesale entries use the wholesale price and ignore the retail discount;
// retail entries apply the percentage discount when one is set.
func EffectiveUnitPrice(item models.CartItem) float64 {
	if item.OrderType == models.OrderTypeWholesale && item.Medicine.WholesalePrice != nil {
		return *item.Medicine.WholesalePrice
	}
	if item.Medicine.Discount > 0 {
		return item.Medicine.Price * (1 - item.Medicine.Discount/100)
	}
	return item.Medicine.Price
}

// LineTotal is the effective unit price times the quantity.
func LineTotal(item models.CartItem) float64 {
	return EffectiveUnitPrice(item) * float64(item.Quantity)
}

// Subtotal sums line totals without intermediate rounding. Rounding happens
// only at presentation boundaries so it cannot compound across items.
func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// Count is the total unit count across the cart, not the number of entries.
// Drives the badge display and emptiness checks.
func Count(items []models.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Round2 rounds a monetary value to 2 decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
