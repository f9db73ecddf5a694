package handlers

import "fmt"

type wholesaleUpdateInput struct {
	Price                *float64
	WholesalePrice       *float64
	ClearWholesale       bool
	MinWholesaleQuantity *int
	Discount             *float64
}

type wholesaleUpdateResult struct {
	Price                float64
	WholesalePrice       *float64
	MinWholesaleQuantity *int
	Discount             float64
	SetWholesale         bool
	ClearWholesale       bool
	SetDiscount          bool
}

func validateWholesaleFields(price float64, wholesalePrice *float64, minQuantity *int) error {
	if wholesalePrice == nil && minQuantity == nil {
		return nil
	}
	if wholesalePrice == nil || minQuantity == nil {
		return fmt.Errorf("wholesalePrice and minWholesaleQuantity must be set together")
	}
	if *wholesalePrice <= 0 {
		return fmt.Errorf("wholesalePrice must be greater than 0")
	}
	if *wholesalePrice >= price {
		return fmt.Errorf("wholesalePrice must be less than price")
	}
	if *minQuantity < 1 {
		return fmt.Errorf("minWholesaleQuantity must be at least 1")
	}
	return nil
}

// A 100% discount is a legal free-item promotion; anything above is not.
func validateDiscount(discount float64) error {
	if discount < 0 || discount > 100 {
		return fmt.Errorf("discount must be between 0 and 100")
	}
	return nil
}

func resolveWholesaleUpdate(existingPrice float64, existingWholesalePrice *float64, existingMinQuantity *int, existingDiscount float64, input wholesaleUpdateInput) (wholesaleUpdateResult, error) {
	result := wholesaleUpdateResult{
		Price:                existingPrice,
		WholesalePrice:       existingWholesalePrice,
		MinWholesaleQuantity: existingMinQuantity,
		Discount:             existingDiscount,
	}

	if input.Price != nil {
		result.Price = *input.Price
	}

	if input.ClearWholesale {
		result.WholesalePrice = nil
		result.MinWholesaleQuantity = nil
		result.ClearWholesale = true
	} else {
		if input.WholesalePrice != nil {
			result.WholesalePrice = input.WholesalePrice
			result.SetWholesale = true
		}
		if input.MinWholesaleQuantity != nil {
			result.MinWholesaleQuantity = input.MinWholesaleQuantity
			result.SetWholesale = true
		}
	}

	if input.Discount != nil {
		result.Discount = *input.Discount
		result.SetDiscount = true
	}

	if err := validateWholesaleFields(result.Price, result.WholesalePrice, result.MinWholesaleQuantity); err != nil {
		return wholesaleUpdateResult{}, err
	}
	if err := validateDiscount(result.Discount); err != nil {
		return wholesaleUpdateResult{}, err
	}

	return result, nil
}
