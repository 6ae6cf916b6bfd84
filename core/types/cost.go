// Package types - Cost breakdown types
package types

import "github.com/shopspring/decimal"

// LineItem is a single entry in a vendor cost breakdown
type LineItem struct {
	// Channel associates the item with a channel (or "System")
	Channel string `json:"channel"`

	// Label is a human-readable description
	Label string `json:"label"`

	// Amount is the monthly monetary value
	Amount decimal.Decimal `json:"amount"`

	// RateNote explains the unit rate applied (e.g. "$0.018/min")
	RateNote string `json:"rate_note"`

	// Category buckets the item for portfolio aggregation
	Category CostCategory `json:"category"`

	// IsTotal marks per-channel subtotal rows; total rows are display-only
	// and never summed again
	IsTotal bool `json:"is_total,omitempty"`
}

// FixedFees are recurring and one-time fees reported outside the monthly
// usage run-rate. They surface only in TCO projection.
type FixedFees struct {
	// PlatformAnnual is the annual platform/license fee
	PlatformAnnual decimal.Decimal `json:"platform_annual"`

	// OneTime covers professional-services and setup fees
	OneTime decimal.Decimal `json:"one_time"`
}

// PlatformMonthly returns the pro-rata monthly view of the annual fee.
// Display only; it is never folded into the usage total.
func (f FixedFees) PlatformMonthly() decimal.Decimal {
	return f.PlatformAnnual.Div(decimal.NewFromInt(12))
}

// CostBreakdown is the itemized monthly cost for one vendor.
// It is recomputed from scratch on every input change.
type CostBreakdown struct {
	// Vendor is the vendor this breakdown belongs to
	Vendor VendorID `json:"vendor"`

	// Items is the ordered line-item sequence
	Items []LineItem `json:"items"`

	// Per-category usage totals
	Voice          decimal.Decimal `json:"voice"`
	Digital        decimal.Decimal `json:"digital"`
	Email          decimal.Decimal `json:"email"`
	AI             decimal.Decimal `json:"ai"`
	Infrastructure decimal.Decimal `json:"infrastructure"`

	// Fixed holds fees excluded from the monthly usage total
	Fixed FixedFees `json:"fixed"`
}

// NewCostBreakdown returns an all-zero breakdown for a vendor
func NewCostBreakdown(vendor VendorID) *CostBreakdown {
	return &CostBreakdown{Vendor: vendor}
}

// AddItem appends a usage line item and accumulates its category total
func (b *CostBreakdown) AddItem(item LineItem) {
	b.Items = append(b.Items, item)
	if item.IsTotal {
		return
	}
	switch item.Category {
	case CategoryVoice:
		b.Voice = b.Voice.Add(item.Amount)
	case CategoryDigital:
		b.Digital = b.Digital.Add(item.Amount)
	case CategoryEmail:
		b.Email = b.Email.Add(item.Amount)
	case CategoryAI:
		b.AI = b.AI.Add(item.Amount)
	case CategoryInfrastructure:
		b.Infrastructure = b.Infrastructure.Add(item.Amount)
	}
}

// AddTotal appends a per-channel subtotal row. Total rows are display-only
// and never accumulated into category totals.
func (b *CostBreakdown) AddTotal(channel, label string, amount decimal.Decimal, note string) {
	b.Items = append(b.Items, LineItem{
		Channel:  channel,
		Label:    label,
		Amount:   amount,
		RateNote: note,
		IsTotal:  true,
	})
}

// Total returns the monthly usage run-rate for this vendor.
// Fixed fees are excluded.
func (b *CostBreakdown) Total() decimal.Decimal {
	return b.Voice.Add(b.Digital).Add(b.Email).Add(b.AI).Add(b.Infrastructure)
}

// IsZero reports whether the breakdown carries no cost at all
func (b *CostBreakdown) IsZero() bool {
	return b.Total().IsZero() && b.Fixed.PlatformAnnual.IsZero() && b.Fixed.OneTime.IsZero()
}

// TCOProjection is the multi-year total cost of ownership
type TCOProjection struct {
	Year1 decimal.Decimal `json:"year1"`
	Year2 decimal.Decimal `json:"year2"`
	Year3 decimal.Decimal `json:"year3"`
}

// AggregatedFinancials is the derived portfolio view across all active
// vendors. It is never stored independently; callers recompute it whenever
// channels, assignments, or the resourcing plan change.
type AggregatedFinancials struct {
	// Vendors holds per-vendor breakdowns in canonical vendor order
	Vendors []*CostBreakdown `json:"vendors"`

	// Portfolio category totals across active vendors
	Voice          decimal.Decimal `json:"voice"`
	Digital        decimal.Decimal `json:"digital"`
	Email          decimal.Decimal `json:"email"`
	AI             decimal.Decimal `json:"ai"`
	Infrastructure decimal.Decimal `json:"infrastructure"`

	// TotalMonthly is the blended monthly usage run-rate
	TotalMonthly decimal.Decimal `json:"total_monthly"`

	// AnnualPlatform is the sum of active vendors' annual platform fees
	AnnualPlatform decimal.Decimal `json:"annual_platform"`

	// OneTime is the sum of active vendors' one-time fees
	OneTime decimal.Decimal `json:"one_time"`

	// ImplementationCost is derived from the resourcing plan
	ImplementationCost decimal.Decimal `json:"implementation_cost"`

	// TCO is the multi-year projection
	TCO TCOProjection `json:"tco"`
}

// Breakdown returns the breakdown for a vendor, if active
func (a *AggregatedFinancials) Breakdown(vendor VendorID) (*CostBreakdown, bool) {
	for _, b := range a.Vendors {
		if b.Vendor == vendor {
			return b, true
		}
	}
	return nil, false
}
