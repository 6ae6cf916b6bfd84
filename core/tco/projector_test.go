package tco

import (
	"testing"

	"github.com/shopspring/decimal"

	"cx-cost/core/types"
)

func TestProject(t *testing.T) {
	agg := &types.AggregatedFinancials{
		TotalMonthly:   decimal.NewFromInt(2500),
		AnnualPlatform: decimal.NewFromInt(40000),
		OneTime:        decimal.NewFromInt(20000),
	}
	proj := Project(agg, decimal.NewFromInt(35000))

	// 2,500 x 12 + 40,000 + 20,000 + 35,000
	if proj.Year1.String() != "125000" {
		t.Errorf("Year1 = %s, want 125000", proj.Year1)
	}
	// Recurring years drop the one-time charges but keep the platform fee.
	if proj.Year2.String() != "70000" {
		t.Errorf("Year2 = %s, want 70000", proj.Year2)
	}
	if !proj.Year2.Equal(proj.Year3) {
		t.Errorf("Year3 = %s, want equal to Year2 %s", proj.Year3, proj.Year2)
	}
}

func TestProjectZeroRunRate(t *testing.T) {
	proj := Project(&types.AggregatedFinancials{}, decimal.Zero)
	if !proj.Year1.IsZero() || !proj.Year2.IsZero() || !proj.Year3.IsZero() {
		t.Errorf("empty financials projected %s/%s/%s, want zeros", proj.Year1, proj.Year2, proj.Year3)
	}
}
