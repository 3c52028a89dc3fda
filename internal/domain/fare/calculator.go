// Package fare computes invoice totals. The calculator is a total function:
// callers normalize malformed input (negative, NaN) to zero before invoking,
// so it always returns a defined amount and has no error path.
package fare

import (
	"github.com/shopspring/decimal"

	"github.com/globaltours/invoice-api/internal/domain/entity"
)

// ComputeTotal returns the exact arithmetic sum of the base fare, the driver
// allowance, and every additional charge. No rounding: currency formatting is
// a presentation concern.
func ComputeTotal(fareAmount, driverAllowance decimal.Decimal, charges []entity.AdditionalCharge) decimal.Decimal {
	total := fareAmount.Add(driverAllowance)
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total
}
