package cart

import (
	"errors"
	"testing"

	"backend/internal/models"
)

func wholesaleMedicine(name string, stock int, wholesalePrice float64, minQuantity int) models.Medicine {
	return models.Medicine{
		Name:                 name,
		Price:                wholesalePrice * 2,
		WholesalePrice:       &wholesalePrice,
		MinWholesaleQuantity: &minQuantity,
		Stock:                stock,
	}
}

func TestValidateCartQuantityWholesaleBelowMinimum(t *testing.T) {
	medicine := wholesaleMedicine("Napa", 100, 500, 10)

	err := validateCartQuantity(medicine, 5, models.OrderTypeWholesale)
	if err == nil {
		t.Fatal("expected error for quantity below wholesale minimum")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestValidateCartQuantityWholesaleNotEligible(t *testing.T) {
	medicine := models.Medicine{Name: "Seclo", Price: 8, Stock: 100}

	err := validateCartQuantity(medicine, 20, models.OrderTypeWholesale)
	if err == nil {
		t.Fatal("expected error for wholesale order on retail-only medicine")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestValidateCartQuantityExceedsStock(t *testing.T) {
	medicine := models.Medicine{Name: "Seclo", Price: 8, Stock: 3}

	if err := validateCartQuantity(medicine, 4, models.OrderTypeRetail); err == nil {
		t.Fatal("expected error for quantity above stock")
	}
	if err := validateCartQuantity(medicine, 3, models.OrderTypeRetail); err != nil {
		t.Fatalf("expected quantity equal to stock to pass, got %v", err)
	}
}

func TestValidateCartQuantityRejectsNonPositive(t *testing.T) {
	medicine := models.Medicine{Name: "Seclo", Price: 8, Stock: 10}

	for _, quantity := range []int{0, -1} {
		if err := validateCartQuantity(medicine, quantity, models.OrderTypeRetail); err == nil {
			t.Fatalf("expected error for quantity %d", quantity)
		}
	}
}

func TestValidateCartQuantityWholesaleAtMinimum(t *testing.T) {
	medicine := wholesaleMedicine("Napa", 100, 500, 10)

	if err := validateCartQuantity(medicine, 10, models.OrderTypeWholesale); err != nil {
		t.Fatalf("expected quantity at wholesale minimum to pass, got %v", err)
	}
}
