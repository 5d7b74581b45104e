package services

import (
	"github.com/shopspring/decimal"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
)

// The pricing engine computes deterministic unit prices for cart items over
// their resolved catalog references. All arithmetic is exact decimal; binary
// floats would drift under repeated cent-level summation.
//
// An unresolvable reference is a data-integrity fault and fails with a
// reference error. It is never priced as zero: a silent zero makes totals
// silently wrong.

// PriceOf returns the unit price of a cart item.
//
// A package item prices as the stored package price, no arithmetic. A trip
// item prices as the sum of service price × per-service quantity over the
// trip's services; an empty trip prices as zero.
func PriceOf(item *models.CartItem) (decimal.Decimal, error) {
	switch item.ItemType {
	case models.ItemTypePackage:
		if item.Package == nil {
			return decimal.Zero, apperrors.Reference("cart item references a missing package")
		}
		return item.Package.Price, nil

	case models.ItemTypeTrip:
		if item.Trip == nil {
			return decimal.Zero, apperrors.Reference("cart item references a missing trip")
		}
		total := decimal.Zero
		for _, ts := range item.Trip.Services {
			if ts.Service == nil {
				return decimal.Zero, apperrors.Reference("trip references a missing service")
			}
			total = total.Add(ts.Service.Price.Mul(decimal.NewFromInt(int64(ts.Quantity))))
		}
		return total, nil

	default:
		return decimal.Zero, apperrors.Validation("unknown cart item type")
	}
}

// LineTotal is the unit price multiplied by the cart item's own quantity.
// For trips the quantity multiplies the fully-summed trip price.
func LineTotal(item *models.CartItem) (decimal.Decimal, error) {
	price, err := PriceOf(item)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(int64(item.Quantity))), nil
}

// CartTotal sums LineTotal over all items. Decimal addition is exact, so the
// result does not depend on iteration order.
func CartTotal(items []models.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range items {
		line, err := LineTotal(&items[i])
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(line)
	}
	return total, nil
}
