// Package export renders estimate results to spreadsheet-friendly files.
// Two shapes are supported: a single flat CSV model and a three-part
// workbook (costs and summary, phase plan, resources) written as one CSV
// file per sheet.
package export

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/plan"
	"cx-cost/core/types"
)

var (
	zero   = decimal.Zero
	twelve = decimal.NewFromInt(12)
)

// Report binds everything the renderers need: the input snapshot, the
// aggregated financials, and the pricing table the estimate was computed
// against.
type Report struct {
	Input      *types.EstimateInput
	Financials *types.AggregatedFinancials
	Table      *catalog.RegionTable
}

// grid returns the 12-month phase grid derived from the plan
func (r *Report) grid() []plan.StreamPlan {
	return plan.PhaseGrid(r.Input.Plan)
}

// voiceRamp derives the portfolio containment ramp from the first voice
// channel's target. Zero everywhere when no voice channel exists.
func (r *Report) voiceRamp(goLive int) [plan.PlanMonths]int {
	for _, ch := range r.Input.Channels {
		if ch.Type == types.ChannelVoice {
			return plan.ContainmentRamp(ch.ContainmentPct, goLive)
		}
	}
	return [plan.PlanMonths]int{}
}

// billableMinutes computes per-month live voice minutes under the
// containment ramp: inbound volume reduced by the ramped containment plus
// constant outbound traffic, rounded to whole minutes.
func (r *Report) billableMinutes(ramp [plan.PlanMonths]int) [plan.PlanMonths]int64 {
	var out [plan.PlanMonths]int64
	for m := 0; m < plan.PlanMonths; m++ {
		total := decimal.Zero
		for _, ch := range r.Input.Channels {
			if ch.Type != types.ChannelVoice {
				continue
			}
			liveShare := decimal.NewFromInt(int64(100 - ramp[m])).Div(decimal.NewFromInt(100))
			inbound := decimal.NewFromInt(ch.MonthlyVolume).Mul(liveShare).Mul(decimal.NewFromFloat(ch.AHTMinutes))
			outbound := decimal.NewFromInt(ch.OutboundVolume).Mul(decimal.NewFromFloat(ch.OutboundAHTMinutes))
			total = total.Add(inbound).Add(outbound)
		}
		out[m] = total.Round(0).IntPart()
	}
	return out
}

// money formats a decimal as a whole-currency figure using the pricing
// table's symbol
func (r *Report) money(d decimal.Decimal) string {
	return r.Table.CurrencySymbol + d.Round(0).String()
}

// items flattens the per-vendor breakdowns into one line-item sequence in
// canonical vendor order
func (r *Report) items() []types.LineItem {
	var out []types.LineItem
	for _, b := range r.Financials.Vendors {
		out = append(out, b.Items...)
	}
	return out
}

// vendorNames lists the active vendors for the report header
func (r *Report) vendorNames() string {
	s := ""
	for _, b := range r.Financials.Vendors {
		if s != "" {
			s += " + "
		}
		s += b.Vendor.DisplayName()
	}
	if s == "" {
		return "none"
	}
	return s
}
