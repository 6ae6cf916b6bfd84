// Package vendors - Five9 calculator
// Flat seat pricing against the shared resource base: the voice seat rate
// applies when any Voice-channel capability is assigned, otherwise the
// digital seat rate. Seat cost is never volume-driven.
package vendors

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// Five9Calculator prices capabilities assigned to Five9
type Five9Calculator struct{}

// Vendor returns the vendor identifier
func (c *Five9Calculator) Vendor() types.VendorID {
	return types.VendorFive9
}

// Compute builds the Five9 cost breakdown
func (c *Five9Calculator) Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.VendorFive9)
	if assigned.Empty() {
		return b
	}

	voiceSeat := false
	for _, ch := range in.Channels {
		if ch.Type == types.ChannelVoice && assigned.HasOnChannel(ch.ID) {
			voiceSeat = true
			break
		}
	}

	var seatRate decimal.Decimal
	var category types.CostCategory
	if voiceSeat {
		seatRate = rate(table, types.VendorFive9, catalog.RateVoiceSeat)
		category = types.CategoryVoice
	} else {
		seatRate = rate(table, types.VendorFive9, catalog.RateDigitalSeat)
		category = types.CategoryDigital
	}

	cost := decimal.NewFromInt(in.FTE).Mul(seatRate)
	b.AddItem(types.LineItem{
		Channel:  "System",
		Label:    "Five9 Seats",
		Amount:   cost,
		RateNote: perUnitNote(table, seatRate, "agent"),
		Category: category,
	})
	b.AddTotal("System", "Channel Total", cost, "Unified seat")
	return b
}
