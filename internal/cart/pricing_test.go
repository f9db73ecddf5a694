package cart

import (
	"testing"

	"backend/internal/models"
)

func retailItem(price float64, discount float64, quantity int) models.CartItem {
	return models.CartItem{
		Medicine:  models.Medicine{Name: "Test", Price: price, Discount: discount, Stock: 100},
		Quantity:  quantity,
		OrderType: models.OrderTypeRetail,
	}
}

func wholesaleItem(wholesalePrice float64, minQuantity, quantity int) models.CartItem {
	min := minQuantity
	return models.CartItem{
		Medicine: models.Medicine{
			Name:                 "Test",
			Price:                wholesalePrice * 2,
			WholesalePrice:       &wholesalePrice,
			MinWholesaleQuantity: &min,
			Stock:                1000,
		},
		Quantity:  quantity,
		OrderType: models.OrderTypeWholesale,
	}
}

func TestSubtotalRetailWithoutDiscount(t *testing.T) {
	items := []models.CartItem{
		retailItem(150, 0, 2),
		retailItem(40, 0, 3),
	}
	if got := Subtotal(items); got != 2*150+3*40 {
		t.Fatalf("expected subtotal 420, got %v", got)
	}
}

func TestEffectiveUnitPriceAppliesRetailDiscount(t *testing.T) {
	if got := EffectiveUnitPrice(retailItem(200, 25, 1)); got != 150 {
		t.Fatalf("expected discounted price 150, got %v", got)
	}
	if got := EffectiveUnitPrice(retailItem(200, 0, 1)); got != 200 {
		t.Fatalf("expected full price 200 when discount is zero, got %v", got)
	}
}

func TestEffectiveUnitPriceWholesaleIgnoresDiscount(t *testing.T) {
	item := wholesaleItem(500, 10, 10)
	item.Medicine.Discount = 50
	if got := EffectiveUnitPrice(item); got != 500 {
		t.Fatalf("expected wholesale price 500 regardless of discount, got %v", got)
	}
}

func TestSubtotalDiscountedRetailScenario(t *testing.T) {
	// Arnica 150 TK with 10% discount, quantity 2: 2 x 135 = 270, plus
	// the Dhaka delivery charge gives 350.
	items := []models.CartItem{retailItem(150, 10, 2)}
	items[0].Medicine.Name = "Arnica"

	subtotal := Subtotal(items)
	if subtotal != 270 {
		t.Fatalf("expected subtotal 270, got %v", subtotal)
	}

	address := models.Address{Division: "Dhaka"}
	total := subtotal + DeliveryCharge(items, &address)
	if total != 350 {
		t.Fatalf("expected total 350, got %v", total)
	}
}

func TestCountSumsQuantitiesNotEntries(t *testing.T) {
	items := []models.CartItem{
		retailItem(10, 0, 2),
		retailItem(20, 0, 5),
	}
	if got := Count(items); got != 7 {
		t.Fatalf("expected cart count 7, got %d", got)
	}
	if got := Count(nil); got != 0 {
		t.Fatalf("expected empty cart count 0, got %d", got)
	}
}

func TestRound2RoundsAtPresentationOnly(t *testing.T) {
	// Accumulate first, round once: 0.1 x 3 is not exactly 0.3 in float64,
	// the rounded presentation value is.
	items := []models.CartItem{
		retailItem(0.1, 0, 1),
		retailItem(0.1, 0, 1),
		retailItem(0.1, 0, 1),
	}
	if got := Round2(Subtotal(items)); got != 0.3 {
		t.Fatalf("expected rounded subtotal 0.3, got %v", got)
	}
}
