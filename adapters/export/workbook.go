package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"cx-cost/core/plan"
	"cx-cost/core/registry"
	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// Workbook sheet file suffixes
const (
	sheetCosts     = "costs"
	sheetPlan      = "plan"
	sheetResources = "resources"
)

// ExportWorkbook renders the three-sheet model into a directory, one CSV
// per sheet: <base>_costs.csv, <base>_plan.csv, <base>_resources.csv.
// It returns the written file paths.
func ExportWorkbook(dir, base string, r *Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Export("failed to create export directory", err)
	}

	sheets := []struct {
		name   string
		render func(*csv.Writer, *Report)
	}{
		{sheetCosts, writeCostsSheet},
		{sheetPlan, writePlanSheet},
		{sheetResources, writeResourcesSheet},
	}

	var paths []string
	for _, sheet := range sheets {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, sheet.name))
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Export("failed to create workbook sheet", err).
				WithContext("sheet", sheet.name)
		}
		cw := csv.NewWriter(f)
		sheet.render(cw, r)
		cw.Flush()
		werr := cw.Error()
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return nil, errors.Export("failed to write workbook sheet", werr).
				WithContext("sheet", sheet.name)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeCostsSheet emits the first-year monthly model: volume, containment
// ramp, billable minutes, per-category monthly costs, the itemized
// breakdown, assumptions, and the two-year summary.
func writeCostsSheet(cw *csv.Writer, r *Report) {
	grid := r.grid()
	goLive := plan.GoLiveMonth(grid)
	ramp := r.voiceRamp(goLive)
	mins := r.billableMinutes(ramp)

	writeRow(cw, "CX Cost Engine", "Architecture", r.vendorNames())
	writeRow(cw)

	header := []string{"Month"}
	for m := 1; m <= plan.PlanMonths; m++ {
		header = append(header, fmt.Sprintf("M%d", m))
	}
	cw.Write(header)

	cw.Write(monthlyRow("Total Volume", fmt.Sprintf("%d", totalVolume(r.Input))))
	cw.Write(monthlyRow("AHT (mins)", fmt.Sprintf("%g", maxAHT(r.Input))))

	rampRow := []string{"Containment (%)"}
	minsRow := []string{"Total Billable Minutes"}
	for m := 0; m < plan.PlanMonths; m++ {
		rampRow = append(rampRow, fmt.Sprintf("%d", ramp[m]))
		minsRow = append(minsRow, fmt.Sprintf("%d", mins[m]))
	}
	cw.Write(rampRow)
	cw.Write(monthlyRow("Resource Base (FTE)", fmt.Sprintf("%d", r.Input.FTE)))
	cw.Write(minsRow)

	agg := r.Financials
	cw.Write(monthlyRow("Voice monthly cost", agg.Voice.Round(0).String()))
	cw.Write(monthlyRow("Digital monthly cost", agg.Digital.Round(0).String()))
	cw.Write(monthlyRow("Email monthly cost", agg.Email.Round(0).String()))
	cw.Write(monthlyRow("AI monthly cost", agg.AI.Round(0).String()))
	cw.Write(monthlyRow("Infrastructure monthly cost", agg.Infrastructure.Round(0).String()))
	cw.Write(monthlyRow("Total monthly tech run cost", agg.TotalMonthly.Round(0).String()))

	writeRow(cw)
	writeRow(cw, "Cost breakdown", "Channel", "Rate", "Monthly cost")
	for _, item := range r.items() {
		writeRow(cw, item.Label, item.Channel, item.RateNote, item.Amount.Round(0).String())
	}

	writeRow(cw)
	writeRow(cw, "Assumptions")
	writeRow(cw, "Go Live month (derived)", fmt.Sprintf("%d", goLive))
	for _, ch := range r.Input.Channels {
		if ch.Type == types.ChannelEmail {
			continue
		}
		writeRow(cw, fmt.Sprintf("%s Complexity (turns)", ch.ID), fmt.Sprintf("%d", ch.Turns))
		writeRow(cw, fmt.Sprintf("%s Containment target (%%)", ch.ID), fmt.Sprintf("%d", ch.ContainmentPct))
	}
	writeRow(cw, "Resource Base (FTE)", fmt.Sprintf("%d", r.Input.FTE))

	writeSummary(cw, r)
}

// writePlanSheet emits the 12-month phase grid, one row per capability
// stream
func writePlanSheet(cw *csv.Writer, r *Report) {
	header := []string{"Solution"}
	for m := 1; m <= plan.PlanMonths; m++ {
		header = append(header, fmt.Sprintf("M%d", m))
	}
	cw.Write(header)

	for _, stream := range r.grid() {
		row := []string{stream.Label}
		row = append(row, stream.Months[:]...)
		cw.Write(row)
	}

	writeRow(cw)
	cw.Write(append([]string{"Legend"}, plan.Phases...))
}

// writeResourcesSheet emits the raw plan rows with per-row cost
func writeResourcesSheet(cw *csv.Writer, r *Report) {
	writeRow(cw, "Channel", "Solution", "Role", "Phase", "Start month",
		"Qty", "Duration (mo)", "Effort (%)", "Monthly rate", "Cost")

	mult := r.Input.RateBand.Multiplier()
	for _, row := range r.Input.Plan {
		role, ok := plan.RoleByID(row.RoleID)
		if !ok {
			continue
		}
		label := string(row.Capability)
		if cap, ok := registry.Get(row.Capability); ok {
			label = cap.Label
		}
		rate := role.MonthlyRate.Mul(mult)
		cost := plan.ImplementationCost([]types.ResourceAssignment{row}, r.Input.RateBand)
		writeRow(cw,
			string(row.ChannelType),
			label,
			role.Label,
			row.Phase,
			fmt.Sprintf("M%d", row.StartMonth),
			fmt.Sprintf("%d", row.Quantity),
			fmt.Sprintf("%d", row.DurationMonths),
			fmt.Sprintf("%d", row.EffortPct),
			rate.Round(0).String(),
			cost.Round(0).String(),
		)
	}
}

// monthlyRow fills a constant value across the 12-month horizon
func monthlyRow(label, value string) []string {
	row := make([]string, 0, plan.PlanMonths+1)
	row = append(row, label)
	for m := 0; m < plan.PlanMonths; m++ {
		row = append(row, value)
	}
	return row
}
