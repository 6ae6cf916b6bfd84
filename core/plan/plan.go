// Package plan models the implementation resourcing plan: delivery roles,
// phase scheduling across the first twelve months, implementation labor
// cost, and the containment ramp applied after go-live.
package plan

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// Role is a delivery role with a base monthly rate before rate-band scaling
type Role struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
}

// DefaultRoles is the built-in delivery role catalog
var DefaultRoles = []Role{
	{ID: "pm", Label: "Project Manager", MonthlyRate: decimal.NewFromInt(4500)},
	{ID: "cx_dev", Label: "CX Developer", MonthlyRate: decimal.NewFromInt(4001)},
	{ID: "sa", Label: "Solution Architect", MonthlyRate: decimal.NewFromInt(5447)},
	{ID: "qa", Label: "QA Analyst", MonthlyRate: decimal.NewFromInt(3500)},
}

// RoleByID looks up a delivery role
func RoleByID(id string) (Role, bool) {
	for _, r := range DefaultRoles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// Phases is the ordered delivery phase vocabulary
var Phases = []string{"Discovery", "Build", "Testing", "Go Live", "Hypercare"}

// ValidPhase reports whether the tag is a known phase
func ValidPhase(phase string) bool {
	for _, p := range Phases {
		if p == phase {
			return true
		}
	}
	return false
}

// PlanMonths is the scheduling horizon of the phase grid
const PlanMonths = 12

// DefaultGoLiveMonth applies when no plan row produces a Go Live month
const DefaultGoLiveMonth = 4

// ImplementationCost sums the one-time labor cost of the plan. Each row
// contributes rate × band multiplier × duration × quantity × effort share.
// Rows naming an unknown role contribute zero. Quantity defaults to 1 and
// effort to 100% when unset.
func ImplementationCost(rows []types.ResourceAssignment, band types.RateBand) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		role, ok := RoleByID(r.RoleID)
		if !ok {
			continue
		}
		qty := r.Quantity
		if qty <= 0 {
			qty = 1
		}
		effort := r.EffortPct
		if effort <= 0 {
			effort = 100
		}
		cost := role.MonthlyRate.
			Mul(band.Multiplier()).
			Mul(decimal.NewFromInt(int64(r.DurationMonths))).
			Mul(decimal.NewFromInt(int64(qty))).
			Mul(decimal.NewFromInt(int64(effort))).
			Div(decimal.NewFromInt(100))
		total = total.Add(cost)
	}
	return total
}

// AutoPlan generates a starter plan from the active channel and capability
// set: per capability stream, one solution architect for month 1, a project
// manager at quarter allocation for six months, and a CX developer for four
// months from month 2. Existing rows are not considered; callers decide
// whether to replace or merge.
func AutoPlan(in *types.EstimateInput) []types.ResourceAssignment {
	var rows []types.ResourceAssignment
	for _, ch := range in.Channels {
		for _, a := range in.Assignments {
			if a.ChannelID != ch.ID {
				continue
			}
			cap, ok := registry.Get(a.Capability)
			if !ok || !cap.AppliesTo(ch.Type) {
				continue
			}
			rows = append(rows,
				types.ResourceAssignment{
					ID: uuid.NewString(), ChannelType: ch.Type, Capability: a.Capability,
					RoleID: "sa", Phase: "Build", StartMonth: 1, DurationMonths: 1, Quantity: 1, EffortPct: 100,
				},
				types.ResourceAssignment{
					ID: uuid.NewString(), ChannelType: ch.Type, Capability: a.Capability,
					RoleID: "pm", Phase: "Build", StartMonth: 1, DurationMonths: 6, Quantity: 1, EffortPct: 25,
				},
				types.ResourceAssignment{
					ID: uuid.NewString(), ChannelType: ch.Type, Capability: a.Capability,
					RoleID: "cx_dev", Phase: "Build", StartMonth: 2, DurationMonths: 4, Quantity: 1, EffortPct: 100,
				},
			)
		}
	}
	return rows
}

// StreamPlan is the 12-month phase schedule for one capability stream
type StreamPlan struct {
	// Capability identifies the stream
	Capability types.CapabilityID `json:"capability"`

	// Label is the capability display label
	Label string `json:"label"`

	// Months holds the phase tag per month, empty when nothing is planned
	Months [PlanMonths]string `json:"months"`
}

// PhaseGrid projects the plan rows onto a per-capability 12-month grid.
// After the last Build month of a stream, the following empty month becomes
// Go Live and any remaining empty months become Hypercare.
func PhaseGrid(rows []types.ResourceAssignment) []StreamPlan {
	byCapIdx := make(map[types.CapabilityID]int)
	var grid []StreamPlan

	for _, r := range rows {
		cap, ok := registry.Get(r.Capability)
		if !ok {
			continue
		}
		idx, seen := byCapIdx[r.Capability]
		if !seen {
			idx = len(grid)
			byCapIdx[r.Capability] = idx
			grid = append(grid, StreamPlan{Capability: cap.ID, Label: cap.Label})
		}
		start := r.StartMonth
		if start < 1 {
			start = 1
		}
		end := start + r.DurationMonths - 1
		if end > PlanMonths {
			end = PlanMonths
		}
		for m := start; m <= end; m++ {
			grid[idx].Months[m-1] = r.Phase
		}
	}

	for i := range grid {
		months := &grid[i].Months
		buildEnd := -1
		for m, phase := range months {
			if phase == "Build" {
				buildEnd = m
			}
		}
		if buildEnd >= 0 && buildEnd < PlanMonths-1 {
			if months[buildEnd+1] == "" {
				months[buildEnd+1] = "Go Live"
			}
			for m := buildEnd + 2; m < PlanMonths; m++ {
				if months[m] == "" {
					months[m] = "Hypercare"
				}
			}
		}
	}
	return grid
}

// GoLiveMonth derives the earliest Go Live month across all streams of the
// phase grid, falling back to the default when no stream reaches Go Live.
func GoLiveMonth(grid []StreamPlan) int {
	earliest := 0
	for _, stream := range grid {
		for m, phase := range stream.Months {
			if phase == "Go Live" && (earliest == 0 || m+1 < earliest) {
				earliest = m + 1
			}
		}
	}
	if earliest == 0 {
		return DefaultGoLiveMonth
	}
	return earliest
}

// ContainmentRamp spreads the target containment percentage over the first
// year: zero before go-live, then 25%, 50%, and 100% of target in three
// consecutive three-month segments, holding at target afterwards. Segment
// values are rounded to whole percentage points.
func ContainmentRamp(targetPct, goLiveMonth int) [PlanMonths]int {
	var ramp [PlanMonths]int
	if targetPct <= 0 {
		return ramp
	}
	segments := []struct {
		months int
		factor float64
	}{
		{3, 0.25},
		{3, 0.5},
		{3, 1.0},
	}
	idx := goLiveMonth - 1
	if idx < 0 {
		idx = 0
	}
	for _, seg := range segments {
		for i := 0; i < seg.months && idx < PlanMonths; i++ {
			ramp[idx] = int(float64(targetPct)*seg.factor + 0.5)
			idx++
		}
	}
	for ; idx < PlanMonths; idx++ {
		ramp[idx] = targetPct
	}
	return ramp
}
