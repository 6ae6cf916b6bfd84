// Package vendors - Cresta calculator
// Per-minute AI agent assist on live (uncontained) interaction minutes.
package vendors

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/pricing"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// CrestaCalculator prices capabilities assigned to Cresta
type CrestaCalculator struct{}

// Vendor returns the vendor identifier
func (c *CrestaCalculator) Vendor() types.VendorID {
	return types.VendorCresta
}

// Compute builds the Cresta cost breakdown
func (c *CrestaCalculator) Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.VendorCresta)
	if assigned.Empty() {
		return b
	}

	perMin := rate(table, types.VendorCresta, catalog.RateAIAssistMin)
	for _, ch := range in.Channels {
		if !assigned.Has(ch.ID, types.CapAgentAssist) {
			continue
		}
		split := pricing.ContainmentSplit(ch.MonthlyVolume, ch.ContainmentPct)
		liveMins := pricing.Minutes(split.Live, ch.AHTMinutes)
		if ch.Type == types.ChannelVoice {
			liveMins = liveMins.Add(pricing.Minutes(decimal.NewFromInt(ch.OutboundVolume), ch.OutboundAHTMinutes))
		}
		b.AddItem(types.LineItem{
			Channel:  string(ch.Type),
			Label:    "Cresta AI Assist",
			Amount:   liveMins.Mul(perMin),
			RateNote: perUnitNote(table, perMin, "min"),
			Category: types.CategoryAI,
		})
	}
	return b
}
