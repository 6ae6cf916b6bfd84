package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
)

func TestContainmentSplitConservation(t *testing.T) {
	tests := []struct {
		name          string
		volume        int64
		containment   int
		wantLive      string
		wantContained string
	}{
		{"typical", 10000, 15, "8500", "1500"},
		{"zero containment", 10000, 0, "10000", "0"},
		{"full containment", 10000, 100, "0", "10000"},
		{"odd split", 1001, 33, "670.67", "330.33"},
		{"zero volume", 0, 50, "0", "0"},
		{"negative volume clamps", -5, 50, "0", "0"},
		{"containment above 100 clamps", 1000, 150, "0", "1000"},
		{"negative containment clamps", 1000, -10, "1000", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ContainmentSplit(tt.volume, tt.containment)
			if s.Live.String() != tt.wantLive {
				t.Errorf("Live = %s, want %s", s.Live, tt.wantLive)
			}
			if s.Contained.String() != tt.wantContained {
				t.Errorf("Contained = %s, want %s", s.Contained, tt.wantContained)
			}
			vol := tt.volume
			if vol < 0 {
				vol = 0
			}
			if !s.Total().Equal(decimal.NewFromInt(vol)) {
				t.Errorf("Live + Contained = %s, want exactly %d", s.Total(), vol)
			}
		})
	}
}

func TestSessionUnits(t *testing.T) {
	tests := []struct {
		aht  float64
		want int64
	}{
		{15, 1},
		{16, 2},
		{1, 1},
		{0, 0},
		{-3, 0},
		{14.9, 1},
		{30, 2},
		{30.1, 3},
		{45, 3},
	}
	for _, tt := range tests {
		if got := SessionUnits(tt.aht); got != tt.want {
			t.Errorf("SessionUnits(%v) = %d, want %d", tt.aht, got, tt.want)
		}
	}
}

func TestMinutesZeroAHT(t *testing.T) {
	if got := Minutes(decimal.NewFromInt(1000), 0); !got.IsZero() {
		t.Errorf("Minutes with zero AHT = %s, want 0", got)
	}
	if got := Minutes(decimal.NewFromInt(1000), 4.5); got.String() != "4500" {
		t.Errorf("Minutes = %s, want 4500", got)
	}
}

func TestTieredCost(t *testing.T) {
	schedule := catalog.TierSchedule{
		{UpTo: 200000, Price: decimal.NewFromFloat(0.18)},
		{UpTo: 400000, Price: decimal.NewFromFloat(0.16)},
		{Price: decimal.NewFromFloat(0.14)},
	}

	tests := []struct {
		name     string
		quantity int64
		want     string
	}{
		{"inside first band", 50000, "9000"},
		{"exactly first ceiling", 200000, "36000"},
		{"spans two bands", 250000, "44000"},
		{"exactly second ceiling", 400000, "68000"},
		{"into terminal band", 500000, "82000"},
		{"zero quantity", 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TieredCost(decimal.NewFromInt(tt.quantity), schedule)
			if got.String() != tt.want {
				t.Errorf("TieredCost(%d) = %s, want %s", tt.quantity, got, tt.want)
			}
		})
	}
}

// TestTieredCostExactAccounting verifies every unit bills exactly once: the
// cost of N units equals the sum of band-by-band consumption.
func TestTieredCostExactAccounting(t *testing.T) {
	schedule := catalog.TierSchedule{
		{UpTo: 100, Price: decimal.NewFromInt(3)},
		{UpTo: 250, Price: decimal.NewFromInt(2)},
		{Price: decimal.NewFromInt(1)},
	}
	// 300 units: 100@3 + 150@2 + 50@1 = 300 + 300 + 50 = 650
	got := TieredCost(decimal.NewFromInt(300), schedule)
	if got.String() != "650" {
		t.Errorf("TieredCost(300) = %s, want 650", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	a := catalog.Assumptions{
		OutputTokenRatio: decimal.NewFromFloat(0.2),
		CharsPerToken:    4,
	}
	tok := EstimateTokens(5000, 1, a)
	if tok.InputTokens.String() != "1500" {
		t.Errorf("InputTokens = %s, want 1500", tok.InputTokens)
	}
	if tok.OutputTokens.String() != "300" {
		t.Errorf("OutputTokens = %s, want 300", tok.OutputTokens)
	}
}

// TestTokenCostScenario prices the canonical generative-AI example:
// contextChars=5000, complexity=1, turns=5, volume=1000 on a
// $0.003/$0.015 model comes to $45/month.
func TestTokenCostScenario(t *testing.T) {
	a := catalog.Assumptions{
		OutputTokenRatio: decimal.NewFromFloat(0.2),
		CharsPerToken:    4,
	}
	model := catalog.ModelRates{
		InputPer1K:  decimal.NewFromFloat(0.003),
		OutputPer1K: decimal.NewFromFloat(0.015),
	}

	tok := EstimateTokens(5000, 1, a)
	perTurn := tok.TurnCost(model)
	if perTurn.String() != "0.009" {
		t.Errorf("TurnCost = %s, want 0.009", perTurn)
	}

	total := perTurn.Mul(decimal.NewFromInt(1000)).Mul(decimal.NewFromInt(5))
	if total.String() != "45" {
		t.Errorf("monthly total = %s, want 45", total)
	}
}

func TestEstimateTokensClampsNegatives(t *testing.T) {
	a := catalog.Assumptions{
		OutputTokenRatio: decimal.NewFromFloat(0.2),
		CharsPerToken:    4,
	}
	tok := EstimateTokens(-100, -2, a)
	if !tok.InputTokens.IsZero() || !tok.OutputTokens.IsZero() {
		t.Errorf("negative inputs should estimate zero tokens, got %s/%s",
			tok.InputTokens, tok.OutputTokens)
	}
}
