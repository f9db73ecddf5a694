package handlers

import "testing"

func TestValidateWholesaleFieldsRequiresBothOrNeither(t *testing.T) {
	if err := validateWholesaleFields(100, nil, nil); err != nil {
		t.Fatalf("expected no error without wholesale fields, got %v", err)
	}

	price := 80.0
	if err := validateWholesaleFields(100, &price, nil); err == nil {
		t.Fatal("expected error when only wholesalePrice is set")
	}

	minQty := 10
	if err := validateWholesaleFields(100, nil, &minQty); err == nil {
		t.Fatal("expected error when only minWholesaleQuantity is set")
	}

	if err := validateWholesaleFields(100, &price, &minQty); err != nil {
		t.Fatalf("expected valid wholesale fields, got %v", err)
	}
}

func TestValidateWholesaleFieldsPriceBounds(t *testing.T) {
	minQty := 10
	for _, wholesale := range []float64{0, -5, 100, 150} {
		w := wholesale
		if err := validateWholesaleFields(100, &w, &minQty); err == nil {
			t.Fatalf("expected error for wholesalePrice=%v", wholesale)
		}
	}
}

func TestValidateWholesaleFieldsMinQuantity(t *testing.T) {
	price := 80.0
	zero := 0
	if err := validateWholesaleFields(100, &price, &zero); err == nil {
		t.Fatal("expected error for minWholesaleQuantity=0")
	}
}

func TestValidateDiscountRange(t *testing.T) {
	for _, discount := range []float64{0, 10, 99.9, 100} {
		if err := validateDiscount(discount); err != nil {
			t.Fatalf("expected discount %v to be valid, got %v", discount, err)
		}
	}
	for _, discount := range []float64{-1, 100.01, 150} {
		if err := validateDiscount(discount); err == nil {
			t.Fatalf("expected error for discount=%v", discount)
		}
	}
}

func TestResolveWholesaleUpdateClear(t *testing.T) {
	existingPrice := 60.0
	existingWholesale := 45.0
	existingMin := 20

	result, err := resolveWholesaleUpdate(existingPrice, &existingWholesale, &existingMin, 0, wholesaleUpdateInput{
		ClearWholesale: true,
	})
	if err != nil {
		t.Fatalf("resolveWholesaleUpdate returned error: %v", err)
	}
	if !result.ClearWholesale || result.WholesalePrice != nil || result.MinWholesaleQuantity != nil {
		t.Fatalf("expected wholesale fields cleared, got %+v", result)
	}
}

func TestResolveWholesaleUpdateRejectsPartialSet(t *testing.T) {
	wholesale := 45.0
	_, err := resolveWholesaleUpdate(60, nil, nil, 0, wholesaleUpdateInput{
		WholesalePrice: &wholesale,
	})
	if err == nil {
		t.Fatal("expected error when setting wholesalePrice without minWholesaleQuantity")
	}
}

func TestResolveWholesaleUpdateValidatesAgainstNewPrice(t *testing.T) {
	existingWholesale := 45.0
	existingMin := 20
	newPrice := 40.0

	_, err := resolveWholesaleUpdate(60, &existingWholesale, &existingMin, 0, wholesaleUpdateInput{
		Price: &newPrice,
	})
	if err == nil {
		t.Fatal("expected error when new price drops below existing wholesale price")
	}
}

func TestResolveWholesaleUpdateKeepsDiscount(t *testing.T) {
	newDiscount := 15.0
	result, err := resolveWholesaleUpdate(60, nil, nil, 5, wholesaleUpdateInput{
		Discount: &newDiscount,
	})
	if err != nil {
		t.Fatalf("resolveWholesaleUpdate returned error: %v", err)
	}
	if !result.SetDiscount || result.Discount != 15 {
		t.Fatalf("expected discount 15, got %+v", result)
	}
}
