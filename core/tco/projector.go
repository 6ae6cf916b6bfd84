// Package tco projects aggregated financials over a multi-year horizon
package tco

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/types"
)

// Project computes the three-year total cost of ownership. Year 1 carries
// the full annualized run rate plus every one-time charge: implementation
// labor, one-time vendor fees, and the annual platform fee. Years 2 and 3
// carry only the run rate and the recurring platform fee.
func Project(agg *types.AggregatedFinancials, implementation decimal.Decimal) types.TCOProjection {
	annualRun := agg.TotalMonthly.Mul(decimal.NewFromInt(12))
	recurring := annualRun.Add(agg.AnnualPlatform)
	return types.TCOProjection{
		Year1: recurring.Add(agg.OneTime).Add(implementation),
		Year2: recurring,
		Year3: recurring,
	}
}
