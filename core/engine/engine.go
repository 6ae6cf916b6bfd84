// Package engine provides the multi-vendor cost aggregation engine.
// It derives the active vendor set from the assignment list, invokes only
// the relevant calculators constrained to their assigned capability
// instances, and sums their breakdowns into portfolio totals. The engine
// never errors on expected edge cases; only an unknown region fails.
package engine

import (
	"go.uber.org/zap"

	"cx-cost/core/catalog"
	"cx-cost/core/plan"
	"cx-cost/core/registry"
	"cx-cost/core/tco"
	"cx-cost/core/types"
	"cx-cost/core/vendors"
	"cx-cost/internal/errors"
	"cx-cost/internal/logging"
)

// Engine aggregates vendor costs for an input snapshot
type Engine struct {
	calcs *vendors.Registry
	cat   *catalog.Catalog
}

// New creates an engine over a calculator registry and catalog
func New(calcs *vendors.Registry, cat *catalog.Catalog) *Engine {
	return &Engine{calcs: calcs, cat: cat}
}

// Default returns an engine with the built-in calculators and catalog
func Default() *Engine {
	return New(vendors.Default(), catalog.Default())
}

// Catalog returns the engine's catalog
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Aggregate computes the blended portfolio financials for the snapshot.
// Fixed fees stay out of the monthly usage total; the sum of per-vendor
// totals equals TotalMonthly exactly, with no rounding before display.
func (e *Engine) Aggregate(in *types.EstimateInput) (*types.AggregatedFinancials, error) {
	table, ok := e.cat.Region(in.Region)
	if !ok {
		return nil, errors.NotFound("pricing region", string(in.Region))
	}

	assignments := e.assignedOnly(in.Assignments)
	agg := &types.AggregatedFinancials{}

	for _, vendor := range registry.ActiveVendors(assignments) {
		calc, ok := e.calcs.Get(vendor)
		if !ok {
			logging.Warn("no calculator for assigned vendor", zap.String("vendor", string(vendor)))
			continue
		}
		assigned := registry.AssignedTo(vendor, assignments)
		b := calc.Compute(in, assigned, table)
		agg.Vendors = append(agg.Vendors, b)

		agg.Voice = agg.Voice.Add(b.Voice)
		agg.Digital = agg.Digital.Add(b.Digital)
		agg.Email = agg.Email.Add(b.Email)
		agg.AI = agg.AI.Add(b.AI)
		agg.Infrastructure = agg.Infrastructure.Add(b.Infrastructure)
		agg.TotalMonthly = agg.TotalMonthly.Add(b.Total())
		agg.AnnualPlatform = agg.AnnualPlatform.Add(b.Fixed.PlatformAnnual)
		agg.OneTime = agg.OneTime.Add(b.Fixed.OneTime)
	}

	return agg, nil
}

// assignedOnly drops assignments without a vendor. An unassigned capability
// contributes zero and is excluded from every vendor total; it is flagged
// for the UI but never fatal and never charged to an arbitrary vendor.
func (e *Engine) assignedOnly(assignments []types.Assignment) []types.Assignment {
	out := make([]types.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Vendor == "" {
			logging.Debug("capability has no vendor assigned, costing as zero",
				zap.String("capability", string(a.Capability)),
				zap.String("channel", a.ChannelID))
			continue
		}
		out = append(out, a)
	}
	return out
}

// Estimate runs the full pipeline for a snapshot: vendor aggregation,
// implementation cost from the resourcing plan, and the TCO projection.
func (e *Engine) Estimate(in *types.EstimateInput) (*types.AggregatedFinancials, error) {
	agg, err := e.Aggregate(in)
	if err != nil {
		return nil, err
	}
	agg.ImplementationCost = plan.ImplementationCost(in.Plan, in.RateBand)
	agg.TCO = tco.Project(agg, agg.ImplementationCost)
	return agg, nil
}

// Compare computes the snapshot's cost as if the given vendor were
// exclusively responsible for every active capability it supports. The
// real assignment state is never mutated and the result is never folded
// into an aggregate.
func (e *Engine) Compare(in *types.EstimateInput, vendor types.VendorID) (*types.CostBreakdown, error) {
	table, ok := e.cat.Region(in.Region)
	if !ok {
		return nil, errors.NotFound("pricing region", string(in.Region))
	}
	calc, ok := e.calcs.Get(vendor)
	if !ok {
		return nil, errors.NotFound("vendor calculator", string(vendor))
	}

	synthetic := make([]types.Assignment, 0, len(in.Assignments))
	for _, a := range in.Assignments {
		cap, ok := registry.Get(a.Capability)
		if !ok || !cap.SupportedBy(vendor) {
			continue
		}
		synthetic = append(synthetic, types.Assignment{
			ChannelID:  a.ChannelID,
			Capability: a.Capability,
			Vendor:     vendor,
		})
	}

	assigned := registry.AssignedTo(vendor, synthetic)
	return calc.Compute(in, assigned, table), nil
}

// VendorComparison is one row of the side-by-side comparison view
type VendorComparison struct {
	// Vendor is the vendor being compared
	Vendor types.VendorID `json:"vendor"`

	// Supported reports whether the vendor can price any selected capability
	Supported bool `json:"supported"`

	// Selected reports whether the vendor is in the active assignment set
	Selected bool `json:"selected"`

	// Breakdown is the as-if-exclusive cost for this vendor
	Breakdown *types.CostBreakdown `json:"breakdown"`
}

// CompareAll produces the comparison rows for every known vendor in
// canonical order, against the same capability and volume inputs.
func (e *Engine) CompareAll(in *types.EstimateInput) ([]VendorComparison, error) {
	selected := make(map[types.VendorID]bool)
	for _, v := range registry.ActiveVendors(e.assignedOnly(in.Assignments)) {
		selected[v] = true
	}

	var rows []VendorComparison
	for _, vendor := range types.AllVendors {
		b, err := e.Compare(in, vendor)
		if err != nil {
			return nil, err
		}
		supported := false
		for _, a := range in.Assignments {
			if cap, ok := registry.Get(a.Capability); ok && cap.SupportedBy(vendor) {
				supported = true
				break
			}
		}
		rows = append(rows, VendorComparison{
			Vendor:    vendor,
			Supported: supported,
			Selected:  selected[vendor],
			Breakdown: b,
		})
	}
	return rows, nil
}
