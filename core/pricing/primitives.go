// Package pricing provides the shared pricing primitives used by every
// vendor calculator: containment splits, minute totals, session blocking,
// tiered-rate consumption, and token estimation. All functions are pure.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
)

// Split is the containment-driven division of a channel's volume
type Split struct {
	// Live is the volume reaching a live agent
	Live decimal.Decimal

	// Contained is the volume resolved by automation
	Contained decimal.Decimal
}

// Total returns Live + Contained. Always exactly equals the input volume.
func (s Split) Total() decimal.Decimal {
	return s.Live.Add(s.Contained)
}

// ContainmentSplit divides volume by containment percentage. Containment
// is clamped to 0-100 so the split never produces negative volumes and
// Live + Contained always equals volume exactly.
func ContainmentSplit(volume int64, containmentPct int) Split {
	if volume < 0 {
		volume = 0
	}
	if containmentPct < 0 {
		containmentPct = 0
	}
	if containmentPct > 100 {
		containmentPct = 100
	}
	total := decimal.NewFromInt(volume)
	contained := total.Mul(decimal.NewFromInt(int64(containmentPct))).Div(decimal.NewFromInt(100))
	return Split{
		Live:      total.Sub(contained),
		Contained: contained,
	}
}

// Minutes returns volume x AHT as a decimal minute count. Zero AHT yields
// zero minutes, never an error.
func Minutes(volume decimal.Decimal, ahtMinutes float64) decimal.Decimal {
	if ahtMinutes <= 0 {
		return decimal.Zero
	}
	return volume.Mul(decimal.NewFromFloat(ahtMinutes))
}

// SessionBlockMinutes is the billing block size for session-unit pricing
const SessionBlockMinutes = 15

// SessionUnits returns the billable session units per interaction under
// 15-minute blocking, rounding up: AHT 15 bills 1 unit, AHT 16 bills 2,
// AHT 1 bills 1. Zero AHT bills zero units.
func SessionUnits(ahtMinutes float64) int64 {
	if ahtMinutes <= 0 {
		return 0
	}
	return int64(math.Ceil(ahtMinutes / SessionBlockMinutes))
}

// TieredCost consumes tier capacity sequentially: the first ceiling's worth
// of quantity bills at the first band's price, the next band covers usage up
// to its ceiling, and the terminal unbounded band absorbs the remainder. No
// unit is double-counted or dropped.
func TieredCost(quantity decimal.Decimal, schedule catalog.TierSchedule) decimal.Decimal {
	total := decimal.Zero
	if quantity.Sign() <= 0 || len(schedule) == 0 {
		return total
	}
	remaining := quantity
	var floor decimal.Decimal
	for _, tier := range schedule {
		if remaining.Sign() <= 0 {
			break
		}
		var inTier decimal.Decimal
		if tier.Unbounded() {
			inTier = remaining
		} else {
			capacity := decimal.NewFromInt(tier.UpTo).Sub(floor)
			if capacity.Sign() <= 0 {
				continue
			}
			inTier = decimal.Min(remaining, capacity)
			floor = decimal.NewFromInt(tier.UpTo)
		}
		total = total.Add(inTier.Mul(tier.Price))
		remaining = remaining.Sub(inTier)
	}
	return total
}

// TokenEstimate is the estimated token load for one interaction turn
type TokenEstimate struct {
	InputTokens  decimal.Decimal
	OutputTokens decimal.Decimal
}

// EstimateTokens derives per-turn token counts from the channel's context
// size and system complexity. Input tokens are
// (contextChars + systemComplexity x 1000) / charsPerToken; output tokens
// are a fixed fraction of input. Both ratios come from catalog assumptions,
// not literals - they are business heuristics, not measured values.
func EstimateTokens(contextChars int64, systemComplexity int, a catalog.Assumptions) TokenEstimate {
	if contextChars < 0 {
		contextChars = 0
	}
	if systemComplexity < 0 {
		systemComplexity = 0
	}
	chars := decimal.NewFromInt(contextChars).Add(decimal.NewFromInt(int64(systemComplexity)).Mul(decimal.NewFromInt(1000)))
	input := chars.Div(decimal.NewFromInt(a.CharsPerToken))
	return TokenEstimate{
		InputTokens:  input,
		OutputTokens: input.Mul(a.OutputTokenRatio),
	}
}

// TurnCost prices one interaction turn against a model's per-1k token rates
func (t TokenEstimate) TurnCost(m catalog.ModelRates) decimal.Decimal {
	k := decimal.NewFromInt(1000)
	in := t.InputTokens.Div(k).Mul(m.InputPer1K)
	out := t.OutputTokens.Div(k).Mul(m.OutputPer1K)
	return in.Add(out)
}
