package cart

import (
	"strings"

	"backend/internal/models"
)

// Delivery charges in currency units (TK).
const (
	DhakaDeliveryCharge   = 80.0
	OutsideDeliveryCharge = 120.0
)

// DeliveryCharge resolves the shipping cost for a cart. Carts containing
// only wholesale entries ship free (separate freight arrangements). Other
// carts are charged by the address division: 80 inside Dhaka, 120 outside.
//
// A nil address resolves to the outside-Dhaka charge instead of failing so
// cart totals stay renderable before the user has an address on file; hard
// address validation is deferred to checkout.
func DeliveryCharge(items []models.CartItem, address *models.Address) float64 {
	if AllWholesale(items) {
		return 0
	}
	if address != nil && strings.EqualFold(strings.TrimSpace(address.Division), "dhaka") {
		return DhakaDeliveryCharge
	}
	return OutsideDeliveryCharge
}

// AllWholesale reports whether every entry in the cart is a wholesale order.
// True for an empty cart; checkout rejects empty carts before this matters.
func AllWholesale(items []models.CartItem) bool {
	for _, item := range items {
		if item.OrderType != models.OrderTypeWholesale {
			return false
		}
	}
	return true
}
