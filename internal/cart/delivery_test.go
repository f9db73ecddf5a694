package cart

import (
	"testing"

	"backend/internal/models"
)

func TestDeliveryChargeAllWholesaleIsFree(t *testing.T) {
	items := []models.CartItem{wholesaleItem(500, 10, 10)}
	address := models.Address{Division: "Dhaka"}

	if got := DeliveryCharge(items, &address); got != 0 {
		t.Fatalf("expected free delivery for wholesale-only cart, got %v", got)
	}

	subtotal := Subtotal(items)
	if subtotal != 5000 {
		t.Fatalf("expected wholesale subtotal 5000, got %v", subtotal)
	}
	if total := subtotal + DeliveryCharge(items, &address); total != 5000 {
		t.Fatalf("expected total 5000, got %v", total)
	}
}

func TestDeliveryChargeDhakaIsCaseInsensitive(t *testing.T) {
	items := []models.CartItem{retailItem(100, 0, 1)}

	for _, division := range []string{"Dhaka", "dhaka", "DHAKA", " dhaka "} {
		address := models.Address{Division: division}
		if got := DeliveryCharge(items, &address); got != DhakaDeliveryCharge {
			t.Fatalf("expected charge %v for division %q, got %v", DhakaDeliveryCharge, division, got)
		}
	}
}

func TestDeliveryChargeOutsideDhaka(t *testing.T) {
	items := []models.CartItem{retailItem(100, 0, 1)}
	address := models.Address{Division: "Chattogram"}

	if got := DeliveryCharge(items, &address); got != OutsideDeliveryCharge {
		t.Fatalf("expected charge %v outside Dhaka, got %v", OutsideDeliveryCharge, got)
	}
}

func TestDeliveryChargeWithoutAddressFallsBack(t *testing.T) {
	items := []models.CartItem{retailItem(100, 0, 1)}

	if got := DeliveryCharge(items, nil); got != OutsideDeliveryCharge {
		t.Fatalf("expected fallback charge %v with no address, got %v", OutsideDeliveryCharge, got)
	}
}

func TestDeliveryChargeMixedCartIsCharged(t *testing.T) {
	items := []models.CartItem{
		wholesaleItem(500, 10, 10),
		retailItem(100, 0, 1),
	}
	address := models.Address{Division: "Dhaka"}

	if AllWholesale(items) {
		t.Fatal("expected mixed cart to not count as wholesale-only")
	}
	if got := DeliveryCharge(items, &address); got != DhakaDeliveryCharge {
		t.Fatalf("expected charge %v for mixed cart in Dhaka, got %v", DhakaDeliveryCharge, got)
	}
}
