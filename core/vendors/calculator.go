// Package vendors provides the per-vendor cost calculators.
// Calculators are pure: identical inputs yield identical breakdowns, inputs
// are never mutated, and expected edge cases (zero volume, zero AHT, full
// containment, empty assignment) never error.
package vendors

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// Calculator prices the capability instances assigned to one vendor
type Calculator interface {
	// Vendor returns the vendor identifier
	Vendor() types.VendorID

	// Compute returns the vendor's cost breakdown for the assigned
	// capability subset. An empty assignment set yields an all-zero
	// breakdown, fixed fees included.
	Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown
}

// Registry is the calculator dispatch table keyed by vendor id
type Registry struct {
	calcs map[types.VendorID]Calculator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{calcs: make(map[types.VendorID]Calculator)}
}

// Register adds a calculator to the registry
func (r *Registry) Register(c Calculator) error {
	if _, exists := r.calcs[c.Vendor()]; exists {
		return fmt.Errorf("calculator already registered: %s", c.Vendor())
	}
	r.calcs[c.Vendor()] = c
	return nil
}

// Get returns the calculator for a vendor
func (r *Registry) Get(vendor types.VendorID) (Calculator, bool) {
	c, ok := r.calcs[vendor]
	return c, ok
}

// Default returns a registry with every vendor calculator registered
func Default() *Registry {
	r := NewRegistry()
	for _, c := range []Calculator{
		&AWSCalculator{},
		&KoreCalculator{},
		&YellowCalculator{},
		&Five9Calculator{},
		&CrestaCalculator{},
		&ObserveCalculator{},
	} {
		// Registration of the closed calculator set cannot collide.
		_ = r.Register(c)
	}
	return r
}

// rate resolves a vendor unit price, defaulting to zero. Catalog validation
// guarantees required keys exist, so a miss only happens for optional rates.
func rate(table *catalog.RegionTable, vendor types.VendorID, key string) decimal.Decimal {
	r, ok := table.Rate(vendor, key)
	if !ok {
		return decimal.Zero
	}
	return r
}

// perUnitNote formats a unit-rate explanation like "$0.018/min"
func perUnitNote(table *catalog.RegionTable, price decimal.Decimal, unit string) string {
	return fmt.Sprintf("%s%s/%s", table.CurrencySymbol, price.String(), unit)
}
