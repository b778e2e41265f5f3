package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComputeTotal computes the authoritative order total:
// seatCount * unitPrice + sum(quantity * catalog price) over every extra
// with quantity > 0. Pure and deterministic; decimal arithmetic throughout
// so no float accumulation error reaches the persisted total. The result
// is rounded to two decimal places.
//
// Zero-quantity entries are skipped. A negative quantity or an extra id
// missing from the catalog is a *ValidationError.
func ComputeTotal(seatCount int, unitPrice decimal.Decimal, quantities map[int64]int, catalog map[int64]decimal.Decimal) (decimal.Decimal, error) {
	if seatCount < 0 {
		return decimal.Zero, &ValidationError{Reason: "seat count must not be negative"}
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, &ValidationError{Reason: "ticket price must not be negative"}
	}

	total := unitPrice.Mul(decimal.NewFromInt(int64(seatCount)))

	for extraID, quantity := range quantities {
		if quantity == 0 {
			continue
		}
		if quantity < 0 {
			return decimal.Zero, &ValidationError{Reason: fmt.Sprintf("extra %d has negative quantity %d", extraID, quantity)}
		}

		price, ok := catalog[extraID]
		if !ok {
			return decimal.Zero, &ValidationError{Reason: fmt.Sprintf("extra %d is not in the catalog", extraID)}
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
	}

	return total.Round(2), nil
}
