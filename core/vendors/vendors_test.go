package vendors

import (
	"testing"

	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

func usTable(t *testing.T) *catalog.RegionTable {
	t.Helper()
	table, ok := catalog.Default().Region(types.RegionUS)
	if !ok {
		t.Fatal("US region missing from default catalog")
	}
	return table
}

func assign(vendor types.VendorID, pairs ...types.Assignment) registry.AssignedSet {
	return registry.AssignedTo(vendor, pairs)
}

func a(channelID string, cap types.CapabilityID, vendor types.VendorID) types.Assignment {
	return types.Assignment{ChannelID: channelID, Capability: cap, Vendor: vendor}
}

// TestEmptyAssignmentYieldsZero proves non-attribution: a vendor with no
// assigned capability instances contributes nothing, fixed fees included.
func TestEmptyAssignmentYieldsZero(t *testing.T) {
	table := usTable(t)
	in := &types.EstimateInput{
		Region: types.RegionUS,
		FTE:    50,
		Channels: []types.Channel{
			{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 10000, AHTMinutes: 5, ContainmentPct: 15, Turns: 5},
		},
	}

	for _, calc := range []Calculator{
		&AWSCalculator{}, &KoreCalculator{}, &YellowCalculator{},
		&Five9Calculator{}, &CrestaCalculator{}, &ObserveCalculator{},
	} {
		empty := registry.AssignedTo(calc.Vendor(), nil)
		b := calc.Compute(in, empty, table)
		if !b.IsZero() {
			t.Errorf("%s: empty assignment produced nonzero breakdown (total %s, fixed %s/%s)",
				calc.Vendor(), b.Total(), b.Fixed.PlatformAnnual, b.Fixed.OneTime)
		}
	}
}

func TestAWSVoiceWithCarriageAllowance(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: 4, ContainmentPct: 50}
	in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}

	calc := &AWSCalculator{}
	b := calc.Compute(in, assign(types.VendorAWS,
		a("Voice-1", types.CapTelephony, types.VendorAWS),
		a("Voice-1", types.CapConvIVR, types.VendorAWS),
	), table)

	// 500 live calls x 4 min + 500 contained x 2 min carriage = 3000 min
	// at $0.018 = $54. DID inbound bills full inbound minutes: 4000 x
	// $0.0022 = $8.80.
	usage := itemAmount(t, b, "Voice Channel Usage")
	if usage.String() != "54" {
		t.Errorf("Voice Channel Usage = %s, want 54", usage)
	}
	did := itemAmount(t, b, "DID Inbound")
	if did.String() != "8.8" {
		t.Errorf("DID Inbound = %s, want 8.8", did)
	}

	// No outbound volume, so no outbound DID row.
	if hasItem(b, "DID Outbound") {
		t.Error("DID Outbound should be absent without outbound volume")
	}
}

func TestAWSLexTurnsRequireIVRAssignment(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: 4, Turns: 5}
	in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}
	calc := &AWSCalculator{}

	withIVR := calc.Compute(in, assign(types.VendorAWS,
		a("Voice-1", types.CapConvIVR, types.VendorAWS),
	), table)
	// 1000 calls x 5 turns x $0.0065 = $32.50
	lex := itemAmount(t, withIVR, "Lex Voice Automation")
	if lex.String() != "32.5" {
		t.Errorf("Lex Voice Automation = %s, want 32.5", lex)
	}

	telephonyOnly := calc.Compute(in, assign(types.VendorAWS,
		a("Voice-1", types.CapTelephony, types.VendorAWS),
	), table)
	if hasItem(telephonyOnly, "Lex Voice Automation") {
		t.Error("Lex automation must not bill without an IVR assignment")
	}
}

func TestAWSEmailTokenPricing(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{
		ID: "Email-1", Type: types.ChannelEmail, MonthlyVolume: 1000,
		Turns: 5, ContextChars: 5000, SystemComplexity: 1, ModelTier: "sonnet",
	}
	in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}

	calc := &AWSCalculator{}
	b := calc.Compute(in, assign(types.VendorAWS,
		a("Email-1", types.CapEmailAuto, types.VendorAWS),
	), table)

	// (5000 + 1x1000)/4 = 1500 input tokens, 300 output tokens.
	// Per turn: 1.5x0.003 + 0.3x0.015 = $0.009. 1000 emails x 5 turns = $45.
	got := itemAmount(t, b, "Bedrock GenAI")
	if got.String() != "45" {
		t.Errorf("Bedrock GenAI = %s, want 45", got)
	}
	if b.Email.String() != "45" {
		t.Errorf("Email category total = %s, want 45", b.Email)
	}
}

func TestAWSPerAgentQAChargedOnce(t *testing.T) {
	table := usTable(t)
	in := &types.EstimateInput{
		Region: types.RegionUS,
		FTE:    10,
		Channels: []types.Channel{
			{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: 4},
			{ID: "Chat-1", Type: types.ChannelChat, MonthlyVolume: 500, AHTMinutes: 6},
		},
	}

	calc := &AWSCalculator{}
	b := calc.Compute(in, assign(types.VendorAWS,
		a("Voice-1", types.CapQAAuto, types.VendorAWS),
		a("Chat-1", types.CapQAAuto, types.VendorAWS),
	), table)

	// 10 agents x $12, once across both channels.
	if b.Infrastructure.String() != "120" {
		t.Errorf("QA infrastructure total = %s, want 120 (charged once)", b.Infrastructure)
	}
}

func TestKoreSessionBlocking(t *testing.T) {
	table := usTable(t)
	calc := &KoreCalculator{}

	tests := []struct {
		aht  float64
		want string
	}{
		{15, "210"},  // 1 unit  x 1000 x $0.21
		{16, "420"},  // 2 units
		{1, "210"},   // minimum one unit
		{45, "630"},  // 3 units
	}
	for _, tt := range tests {
		ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: tt.aht}
		in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}
		b := calc.Compute(in, assign(types.VendorKore,
			a("Voice-1", types.CapConvIVR, types.VendorKore),
		), table)
		if b.Voice.String() != tt.want {
			t.Errorf("AHT %v: voice total = %s, want %s", tt.aht, b.Voice, tt.want)
		}
	}
}

func TestKoreFixedFeesOutsideRunRate(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{ID: "Chat-1", Type: types.ChannelChat, MonthlyVolume: 5000}
	in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}

	calc := &KoreCalculator{}
	b := calc.Compute(in, assign(types.VendorKore,
		a("Chat-1", types.CapChatbot, types.VendorKore),
	), table)

	// 5000 sessions x $0.16 = $800; platform fee reported separately.
	if b.Total().String() != "800" {
		t.Errorf("usage total = %s, want 800 (fixed fees excluded)", b.Total())
	}
	if b.Fixed.PlatformAnnual.String() != "40000" {
		t.Errorf("platform annual = %s, want 40000", b.Fixed.PlatformAnnual)
	}
	if b.Fixed.OneTime.String() != "20000" {
		t.Errorf("one-time = %s, want 20000", b.Fixed.OneTime)
	}
}

func TestYellowTieredVoiceMinutes(t *testing.T) {
	table := usTable(t)
	calc := &YellowCalculator{}

	tests := []struct {
		name   string
		volume int64
		aht    float64
		want   string
	}{
		// 10000 calls x 5 min = 50000 min inside the first band at $0.18.
		{"first band", 10000, 5, "9000"},
		// 50000 x 5 = 250000 min: 200000@0.18 + 50000@0.16 = 44000.
		{"spans bands", 50000, 5, "44000"},
		// 100000 x 5 = 500000 min: + 100000@0.14 above the second ceiling.
		{"terminal band", 100000, 5, "82000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: tt.volume, AHTMinutes: tt.aht}
			in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}
			b := calc.Compute(in, assign(types.VendorYellow,
				a("Voice-1", types.CapConvIVR, types.VendorYellow),
			), table)
			if b.Voice.String() != tt.want {
				t.Errorf("voice total = %s, want %s", b.Voice, tt.want)
			}
		})
	}
}

func TestFive9SeatSelection(t *testing.T) {
	table := usTable(t)
	calc := &Five9Calculator{}

	voice := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: 4}
	chat := types.Channel{ID: "Chat-1", Type: types.ChannelChat, MonthlyVolume: 500, AHTMinutes: 6}
	in := &types.EstimateInput{Region: types.RegionUS, FTE: 10, Channels: []types.Channel{voice, chat}}

	// Any voice assignment selects the voice seat rate for the whole base.
	withVoice := calc.Compute(in, assign(types.VendorFive9,
		a("Voice-1", types.CapTelephony, types.VendorFive9),
		a("Chat-1", types.CapLiveChat, types.VendorFive9),
	), table)
	if withVoice.Voice.String() != "1590" {
		t.Errorf("voice seat total = %s, want 1590", withVoice.Voice)
	}
	if !withVoice.Digital.IsZero() {
		t.Error("voice seat pricing should not also bill digital seats")
	}

	// Digital-only assignment bills the digital seat rate.
	digitalOnly := calc.Compute(in, assign(types.VendorFive9,
		a("Chat-1", types.CapLiveChat, types.VendorFive9),
	), table)
	if digitalOnly.Digital.String() != "1190" {
		t.Errorf("digital seat total = %s, want 1190", digitalOnly.Digital)
	}

	// Seat cost follows FTE, not volume.
	quiet := *in
	quiet.Channels = []types.Channel{{ID: "Voice-1", Type: types.ChannelVoice}}
	b := calc.Compute(&quiet, assign(types.VendorFive9,
		a("Voice-1", types.CapTelephony, types.VendorFive9),
	), table)
	if b.Voice.String() != "1590" {
		t.Errorf("zero-volume seat total = %s, want 1590", b.Voice)
	}
}

func TestCrestaBillsLiveMinutesOnly(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: 4, ContainmentPct: 50}
	in := &types.EstimateInput{Region: types.RegionUS, Channels: []types.Channel{ch}}

	calc := &CrestaCalculator{}
	b := calc.Compute(in, assign(types.VendorCresta,
		a("Voice-1", types.CapAgentAssist, types.VendorCresta),
	), table)

	// 500 live calls x 4 min x $0.05 = $100. Contained minutes never bill.
	if b.AI.String() != "100" {
		t.Errorf("AI assist total = %s, want 100", b.AI)
	}
}

func TestObservePerAgentLicense(t *testing.T) {
	table := usTable(t)
	in := &types.EstimateInput{
		Region: types.RegionUS,
		FTE:    10,
		Channels: []types.Channel{
			{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 1000, AHTMinutes: 4},
		},
	}

	calc := &ObserveCalculator{}
	b := calc.Compute(in, assign(types.VendorObserve,
		a("Voice-1", types.CapQAAuto, types.VendorObserve),
		a("Voice-1", types.CapAnalytics, types.VendorObserve),
	), table)

	// 10 agents x $69 once, regardless of how many capabilities point at it.
	if b.Infrastructure.String() != "690" {
		t.Errorf("license total = %s, want 690", b.Infrastructure)
	}
}

// TestCalculatorsArePure verifies repeated computation yields identical
// results and never mutates the input snapshot.
func TestCalculatorsArePure(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 10000, AHTMinutes: 5, ContainmentPct: 15, Turns: 5}
	in := &types.EstimateInput{Region: types.RegionUS, FTE: 25, Channels: []types.Channel{ch}}
	set := assign(types.VendorAWS,
		a("Voice-1", types.CapTelephony, types.VendorAWS),
		a("Voice-1", types.CapConvIVR, types.VendorAWS),
		a("Voice-1", types.CapAgentAssist, types.VendorAWS),
	)

	calc := &AWSCalculator{}
	first := calc.Compute(in, set, table)
	second := calc.Compute(in, set, table)

	if !first.Total().Equal(second.Total()) {
		t.Errorf("recomputation diverged: %s vs %s", first.Total(), second.Total())
	}
	if len(first.Items) != len(second.Items) {
		t.Errorf("item count diverged: %d vs %d", len(first.Items), len(second.Items))
	}
	if in.Channels[0].MonthlyVolume != 10000 || in.Channels[0].ContainmentPct != 15 {
		t.Error("input snapshot was mutated")
	}
}

// TestCategoryConservation verifies a breakdown's total equals the sum of
// its category buckets with no rounding drift.
func TestCategoryConservation(t *testing.T) {
	table := usTable(t)
	ch := types.Channel{ID: "Voice-1", Type: types.ChannelVoice, MonthlyVolume: 3333, AHTMinutes: 4.7, ContainmentPct: 31, Turns: 7}
	in := &types.EstimateInput{Region: types.RegionUS, FTE: 13, Channels: []types.Channel{ch}}

	calc := &AWSCalculator{}
	b := calc.Compute(in, assign(types.VendorAWS,
		a("Voice-1", types.CapTelephony, types.VendorAWS),
		a("Voice-1", types.CapConvIVR, types.VendorAWS),
		a("Voice-1", types.CapAgentAssist, types.VendorAWS),
		a("Voice-1", types.CapQAAuto, types.VendorAWS),
		a("Voice-1", types.CapAnalytics, types.VendorAWS),
	), table)

	sum := decimal.Zero
	for _, item := range b.Items {
		if item.IsTotal {
			continue
		}
		sum = sum.Add(item.Amount)
	}
	if !sum.Equal(b.Total()) {
		t.Errorf("item sum %s != breakdown total %s", sum, b.Total())
	}
}

func itemAmount(t *testing.T, b *types.CostBreakdown, label string) decimal.Decimal {
	t.Helper()
	for _, item := range b.Items {
		if item.Label == label {
			return item.Amount
		}
	}
	t.Fatalf("line item %q not found in %s breakdown", label, b.Vendor)
	return decimal.Zero
}

func hasItem(b *types.CostBreakdown, label string) bool {
	for _, item := range b.Items {
		if item.Label == label {
			return true
		}
	}
	return false
}
