// Package vendors - Observe.ai calculator
// Per-agent monthly licensing for QA automation and real-time analytics.
// The license covers the whole agent base once, regardless of how many
// channels or analytics capabilities are assigned.
package vendors

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// ObserveCalculator prices capabilities assigned to Observe.ai
type ObserveCalculator struct{}

// Vendor returns the vendor identifier
func (c *ObserveCalculator) Vendor() types.VendorID {
	return types.VendorObserve
}

// Compute builds the Observe cost breakdown
func (c *ObserveCalculator) Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.VendorObserve)
	if assigned.Empty() {
		return b
	}

	perAgent := rate(table, types.VendorObserve, catalog.RatePerAgentMonthly)
	cost := decimal.NewFromInt(in.FTE).Mul(perAgent)
	b.AddItem(types.LineItem{
		Channel:  "System",
		Label:    "Observe Analytics",
		Amount:   cost,
		RateNote: perUnitNote(table, perAgent, "agent"),
		Category: types.CategoryInfrastructure,
	})
	b.AddTotal("System", "Analytics Total", cost, "Observe license")
	return b
}
