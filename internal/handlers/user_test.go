package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestValidAddressType(t *testing.T) {
	for _, value := range []string{"", "Home", "home", "OFFICE", "Shop"} {
		if !validAddressType(value) {
			t.Fatalf("expected %q to be a valid address type", value)
		}
	}
	for _, value := range []string{"warehouse", "work", "123"} {
		if validAddressType(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestEnsureDefaultAddressPromotesAfterDemotion(t *testing.T) {
	addresses := []models.Address{
		{ID: "a", IsDefault: false}, // just demoted via update
		{ID: "b", IsDefault: false},
	}

	ensureDefaultAddress(addresses, 0)

	if addresses[0].IsDefault {
		t.Fatal("expected the demoted address to stay non-default")
	}
	if !addresses[1].IsDefault {
		t.Fatal("expected another address to be promoted to default")
	}
}

func TestEnsureDefaultAddressOnlyAddressStaysDefault(t *testing.T) {
	addresses := []models.Address{{ID: "a", IsDefault: false}}

	ensureDefaultAddress(addresses, 0)

	if !addresses[0].IsDefault {
		t.Fatal("expected the only address to remain the default")
	}
}

func TestEnsureDefaultAddressLeavesExistingDefaultAlone(t *testing.T) {
	addresses := []models.Address{
		{ID: "a", IsDefault: false},
		{ID: "b", IsDefault: true},
	}

	ensureDefaultAddress(addresses, 0)

	if addresses[0].IsDefault || !addresses[1].IsDefault {
		t.Fatalf("expected defaults untouched, got %+v", addresses)
	}

	defaults := 0
	for _, addr := range addresses {
		if addr.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d", defaults)
	}
}

func TestNewAddressIDFormat(t *testing.T) {
	id, err := newAddressID()
	if err != nil {
		t.Fatalf("newAddressID returned error: %v", err)
	}
	if len(id) != 36 {
		t.Fatalf("expected 36-character id, got %q", id)
	}
	if id == func() string { v, _ := newAddressID(); return v }() {
		t.Fatal("expected unique ids per call")
	}
}
