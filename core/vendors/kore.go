// Package vendors - Kore.ai calculator
// Session-priced conversational AI with 15-minute voice session blocking,
// an annual platform fee, and a one-time expert-services fee.
package vendors

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/pricing"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// KoreCalculator prices capabilities assigned to Kore.ai
type KoreCalculator struct{}

// Vendor returns the vendor identifier
func (c *KoreCalculator) Vendor() types.VendorID {
	return types.VendorKore
}

// Compute builds the Kore cost breakdown
func (c *KoreCalculator) Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.VendorKore)
	if assigned.Empty() {
		return b
	}

	rates, ok := table.Vendor(types.VendorKore)
	if !ok {
		return b
	}

	for _, ch := range in.Channels {
		if !assigned.HasOnChannel(ch.ID) {
			continue
		}
		channel := string(ch.Type)
		split := pricing.ContainmentSplit(ch.MonthlyVolume, ch.ContainmentPct)

		if ch.Type == types.ChannelVoice && assigned.Has(ch.ID, types.CapConvIVR) {
			sessRate := rate(table, types.VendorKore, catalog.RateCIVRSession)
			units := decimal.NewFromInt(pricing.SessionUnits(ch.AHTMinutes))
			cost := decimal.NewFromInt(ch.MonthlyVolume).Mul(units).Mul(sessRate)
			b.AddItem(types.LineItem{
				Channel:  channel,
				Label:    "Kore Voice Sessions",
				Amount:   cost,
				RateNote: perUnitNote(table, sessRate, "sess"),
				Category: types.CategoryVoice,
			})
			b.AddTotal(channel, "Voice Total Cost", cost, "Sum of Voice drivers")
		}

		if ch.Type == types.ChannelChat && assigned.Has(ch.ID, types.CapChatbot) {
			sessRate := rate(table, types.VendorKore, catalog.RateChatbotSession)
			cost := decimal.NewFromInt(ch.MonthlyVolume).Mul(sessRate)
			b.AddItem(types.LineItem{
				Channel:  channel,
				Label:    "Kore Digital Sessions",
				Amount:   cost,
				RateNote: perUnitNote(table, sessRate, "sess"),
				Category: types.CategoryDigital,
			})
			b.AddTotal(channel, "Chat Total Cost", cost, "Sum of Chat drivers")
		}

		if assigned.Has(ch.ID, types.CapAgentAssist) {
			assistRate := rate(table, types.VendorKore, catalog.RateAgentAssistSession)
			cost := split.Live.Mul(assistRate)
			b.AddItem(types.LineItem{
				Channel:  channel,
				Label:    "Kore Agent Assist Sessions",
				Amount:   cost,
				RateNote: perUnitNote(table, assistRate, "sess"),
				Category: types.CategoryAI,
			})
		}
	}

	b.Fixed = rates.Fixed
	b.AddTotal("System", "Annual Platform Fee", b.Fixed.PlatformMonthly(), "Pro-rata monthly")
	return b
}
