package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"cx-cost/core/plan"
	"cx-cost/core/registry"
	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// modelMonths is the horizon of the flat CSV model
const modelMonths = 24

// WriteModelCSV renders the flat 24-month cost model: per-line-item monthly
// rows, the assumption table, a two-year summary, and the implementation
// resources grouped by capability stream.
func WriteModelCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	writeRow(cw, "CX Cost Engine", "Architecture", r.vendorNames())
	writeRow(cw)

	header := []string{"Solution"}
	for m := 1; m <= modelMonths; m++ {
		header = append(header, fmt.Sprintf("M%d", m))
	}
	cw.Write(header)

	cw.Write(repeatRow("Volume", fmt.Sprintf("%d", totalVolume(r.Input))))
	cw.Write(repeatRow("AHT", fmt.Sprintf("%g", maxAHT(r.Input))))
	for _, item := range r.items() {
		label := item.Label
		if item.RateNote != "" {
			label = fmt.Sprintf("%s [%s]", item.Label, item.RateNote)
		}
		cw.Write(repeatRow(label, item.Amount.Round(0).String()))
	}

	writeRow(cw)
	writeRow(cw, "Assumptions")
	writeRow(cw, "Parameter", "Value")
	for _, ch := range r.Input.Channels {
		switch ch.Type {
		case types.ChannelVoice, types.ChannelChat:
			writeRow(cw, fmt.Sprintf("%s Complexity (turns)", ch.ID), fmt.Sprintf("%d", ch.Turns))
			writeRow(cw, fmt.Sprintf("%s Containment (%%)", ch.ID), fmt.Sprintf("%d", ch.ContainmentPct))
		case types.ChannelEmail:
			writeRow(cw, fmt.Sprintf("%s Volume", ch.ID), fmt.Sprintf("%d", ch.MonthlyVolume))
		}
	}
	writeRow(cw, "Resource Base (FTE)", fmt.Sprintf("%d", r.Input.FTE))

	writeSummary(cw, r)
	writeResourceGroups(cw, r)

	cw.Flush()
	return cw.Error()
}

// ExportModelCSV writes the flat model to a file
func ExportModelCSV(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Export("failed to create CSV export file", err)
	}
	defer f.Close()
	return WriteModelCSV(f, r)
}

// writeSummary emits the two-year cost summary. Year 2 keeps the run rate
// and the recurring platform fee; implementation and one-time fees land in
// year 1 only.
func writeSummary(cw *csv.Writer, r *Report) {
	annual := r.Financials.TotalMonthly.Mul(twelve)
	writeRow(cw)
	writeRow(cw, "Summary", "Year 1", "Year 2")
	writeRow(cw, "Tech run cost (annualized)", r.money(annual), r.money(annual))
	writeRow(cw, "Implementation cost (one time)", r.money(r.Financials.ImplementationCost), r.money(zero))
	writeRow(cw, "One-time vendor fees", r.money(r.Financials.OneTime), r.money(zero))
	writeRow(cw, "Annual platform fees", r.money(r.Financials.AnnualPlatform), r.money(r.Financials.AnnualPlatform))
}

// writeResourceGroups emits the plan rows grouped by capability stream
func writeResourceGroups(cw *csv.Writer, r *Report) {
	groups := make(map[types.CapabilityID][]types.ResourceAssignment)
	var order []types.CapabilityID
	for _, row := range r.Input.Plan {
		if _, ok := groups[row.Capability]; !ok {
			order = append(order, row.Capability)
		}
		groups[row.Capability] = append(groups[row.Capability], row)
	}

	writeRow(cw)
	writeRow(cw, "Implementation Resources Grouped by Solution")
	for _, capID := range order {
		label := string(capID)
		if cap, ok := registry.Get(capID); ok {
			label = cap.Label
		}
		writeRow(cw, fmt.Sprintf("Solution Stream: %s", label))
		writeRow(cw, "Role", "Duration", "Cost")
		for _, row := range groups[capID] {
			role, ok := plan.RoleByID(row.RoleID)
			if !ok {
				continue
			}
			cost := plan.ImplementationCost([]types.ResourceAssignment{row}, r.Input.RateBand)
			writeRow(cw, role.Label, fmt.Sprintf("%d mo", row.DurationMonths), r.money(cost))
		}
	}
}

func writeRow(cw *csv.Writer, fields ...string) {
	cw.Write(fields)
}

// repeatRow fills the value across the full month horizon
func repeatRow(label, value string) []string {
	row := make([]string, 0, modelMonths+1)
	row = append(row, label)
	for m := 0; m < modelMonths; m++ {
		row = append(row, value)
	}
	return row
}

func totalVolume(in *types.EstimateInput) int64 {
	var total int64
	for _, ch := range in.Channels {
		total += ch.TotalVolume()
	}
	return total
}

func maxAHT(in *types.EstimateInput) float64 {
	max := 0.0
	for _, ch := range in.Channels {
		if ch.AHTMinutes > max {
			max = ch.AHTMinutes
		}
		if ch.OutboundAHTMinutes > max {
			max = ch.OutboundAHTMinutes
		}
	}
	return max
}
