// Package vendors - Yellow.ai calculator
// Tiered per-minute conversational IVR, session-priced digital bots, and a
// one-time platform fee.
package vendors

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/pricing"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// YellowCalculator prices capabilities assigned to Yellow.ai
type YellowCalculator struct{}

// Vendor returns the vendor identifier
func (c *YellowCalculator) Vendor() types.VendorID {
	return types.VendorYellow
}

// Compute builds the Yellow cost breakdown
func (c *YellowCalculator) Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.VendorYellow)
	if assigned.Empty() {
		return b
	}

	rates, ok := table.Vendor(types.VendorYellow)
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
			schedule, ok := rates.TierScheduleFor(catalog.TierCIVRVoiceMin)
			if ok {
				minutes := pricing.Minutes(decimal.NewFromInt(ch.MonthlyVolume), ch.AHTMinutes).
					Add(pricing.Minutes(decimal.NewFromInt(ch.OutboundVolume), ch.OutboundAHTMinutes))
				cost := pricing.TieredCost(minutes, schedule)
				b.AddItem(types.LineItem{
					Channel:  channel,
					Label:    "Yellow Voice Minutes",
					Amount:   cost,
					RateNote: perUnitNote(table, schedule[0].Price, "min tiered"),
					Category: types.CategoryVoice,
				})
				b.AddTotal(channel, "Voice Total Cost", cost, "Section Total")
			}
		}

		if ch.Type == types.ChannelChat && assigned.Has(ch.ID, types.CapChatbot) {
			sessRate := rate(table, types.VendorYellow, catalog.RateChatbotSession)
			cost := decimal.NewFromInt(ch.MonthlyVolume).Mul(sessRate)
			b.AddItem(types.LineItem{
				Channel:  channel,
				Label:    "Yellow Digital Sessions",
				Amount:   cost,
				RateNote: perUnitNote(table, sessRate, "sess"),
				Category: types.CategoryDigital,
			})
			b.AddTotal(channel, "Chat Total Cost", cost, "Section Total")
		}

		if assigned.Has(ch.ID, types.CapAgentAssist) {
			assistRate := rate(table, types.VendorYellow, catalog.RateAgentAssistSession)
			cost := split.Live.Mul(assistRate)
			b.AddItem(types.LineItem{
				Channel:  channel,
				Label:    "Yellow Agent Assist Sessions",
				Amount:   cost,
				RateNote: perUnitNote(table, assistRate, "sess"),
				Category: types.CategoryAI,
			})
		}
	}

	b.Fixed = rates.Fixed
	return b
}
