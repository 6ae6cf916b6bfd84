// Package input loads scenario files into an estimate input snapshot.
// A scenario is a YAML document describing the client, region, channels
// with their capability activations, and an optional resourcing plan.
// All numeric fields are clamped at this boundary so invalid values never
// reach the calculators.
package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cx-cost/core/plan"
	"cx-cost/core/registry"
	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// Default conversational complexity per channel type, in turns
const (
	defaultVoiceTurns = 5
	defaultChatTurns  = 8
	defaultEmailTurns = 1
)

// Default generative-AI sizing for email automation
const (
	defaultEmailContextChars = 6000
	defaultEmailComplexity   = 2
)

// Scenario is the YAML file shape
type Scenario struct {
	Client   types.ClientInfo  `yaml:"client"`
	Region   string            `yaml:"region"`
	RateBand string            `yaml:"rate_band"`
	FTE      int64             `yaml:"fte"`
	Channels []ScenarioChannel `yaml:"channels"`
	AutoPlan bool              `yaml:"auto_plan"`
	Plan     []ScenarioPlanRow `yaml:"plan"`
}

// ScenarioChannel is one channel entry with its capability activations.
// Vendors maps capability → vendor for explicit overrides; capabilities
// without an entry get the default vendor at activation time.
type ScenarioChannel struct {
	Type               string            `yaml:"type"`
	Volume             int64             `yaml:"volume"`
	AHTMinutes         float64           `yaml:"aht_minutes"`
	OutboundVolume     int64             `yaml:"outbound_volume"`
	OutboundAHTMinutes float64           `yaml:"outbound_aht_minutes"`
	ContainmentPct     int               `yaml:"containment_pct"`
	Turns              int               `yaml:"turns"`
	ModelTier          string            `yaml:"model_tier"`
	ContextChars       int64             `yaml:"context_chars"`
	SystemComplexity   int               `yaml:"system_complexity"`
	Capabilities       []string          `yaml:"capabilities"`
	Vendors            map[string]string `yaml:"vendors"`
}

// ScenarioPlanRow is one explicit resourcing plan entry
type ScenarioPlanRow struct {
	ChannelType string `yaml:"channel_type"`
	Capability  string `yaml:"capability"`
	Role        string `yaml:"role"`
	Phase       string `yaml:"phase"`
	StartMonth  int    `yaml:"start_month"`
	Duration    int    `yaml:"duration_months"`
	Quantity    int    `yaml:"quantity"`
	EffortPct   int    `yaml:"effort_pct"`
}

// LoadFile reads and resolves a scenario file
func LoadFile(path string) (*types.EstimateInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "failed to read scenario file %s", path)
	}
	return Load(data)
}

// Load parses scenario YAML and resolves it into an estimate input:
// channel IDs are generated, capability activations become vendor
// assignments, and defaults fill any gaps.
func Load(data []byte) (*types.EstimateInput, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to parse scenario YAML", err)
	}
	return Resolve(&sc)
}

// Resolve converts a parsed scenario into an estimate input snapshot
func Resolve(sc *Scenario) (*types.EstimateInput, error) {
	in := &types.EstimateInput{
		Client:   sc.Client,
		Region:   parseRegion(sc.Region),
		RateBand: parseRateBand(sc.RateBand),
		FTE:      clampInt64(sc.FTE),
	}

	counts := make(map[types.ChannelType]int)
	for i, c := range sc.Channels {
		chType := types.ChannelType(c.Type)
		if !chType.IsValid() {
			return nil, errors.Inputf("channel %d: unknown channel type %q", i+1, c.Type)
		}
		counts[chType]++
		ch := types.Channel{
			ID:                 fmt.Sprintf("%s-%d", chType, counts[chType]),
			Type:               chType,
			MonthlyVolume:      clampInt64(c.Volume),
			AHTMinutes:         clampFloat(c.AHTMinutes),
			OutboundVolume:     clampInt64(c.OutboundVolume),
			OutboundAHTMinutes: clampFloat(c.OutboundAHTMinutes),
			ContainmentPct:     clampPct(c.ContainmentPct),
			Turns:              clampInt(c.Turns),
			ModelTier:          c.ModelTier,
			ContextChars:       clampInt64(c.ContextChars),
			SystemComplexity:   clampInt(c.SystemComplexity),
		}
		applyChannelDefaults(&ch)
		in.Channels = append(in.Channels, ch)

		assignments, err := resolveAssignments(ch, c)
		if err != nil {
			return nil, err
		}
		in.Assignments = append(in.Assignments, assignments...)
	}

	rows, err := resolvePlan(sc, in)
	if err != nil {
		return nil, err
	}
	in.Plan = rows
	return in, nil
}

// resolveAssignments activates each listed capability on the channel. A
// capability without an explicit vendor gets the default vendor, applied
// once here at activation time.
func resolveAssignments(ch types.Channel, c ScenarioChannel) ([]types.Assignment, error) {
	var out []types.Assignment
	for _, name := range c.Capabilities {
		capID := types.CapabilityID(name)
		vendor, ok := registry.DefaultVendorFor(capID)
		if !ok {
			return nil, errors.Inputf("channel %s: unknown capability %q", ch.ID, name)
		}
		if override, ok := c.Vendors[name]; ok {
			vendor = types.VendorID(override)
		}
		a := types.Assignment{ChannelID: ch.ID, Capability: capID, Vendor: vendor}
		if err := registry.ValidateAssignment(a, ch); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// resolvePlan translates explicit plan rows, or generates the starter plan
// when auto_plan is set and no rows are given.
func resolvePlan(sc *Scenario, in *types.EstimateInput) ([]types.ResourceAssignment, error) {
	if len(sc.Plan) == 0 {
		if sc.AutoPlan {
			return plan.AutoPlan(in), nil
		}
		return nil, nil
	}
	var rows []types.ResourceAssignment
	for i, r := range sc.Plan {
		if _, ok := plan.RoleByID(r.Role); !ok {
			return nil, errors.Inputf("plan row %d: unknown role %q", i+1, r.Role)
		}
		phase := r.Phase
		if phase == "" {
			phase = "Build"
		}
		if !plan.ValidPhase(phase) {
			return nil, errors.Inputf("plan row %d: unknown phase %q", i+1, r.Phase)
		}
		start := r.StartMonth
		if start < 1 {
			start = 1
		}
		rows = append(rows, types.ResourceAssignment{
			ID:             fmt.Sprintf("plan-%d", i+1),
			ChannelType:    types.ChannelType(r.ChannelType),
			Capability:     types.CapabilityID(r.Capability),
			RoleID:         r.Role,
			Phase:          phase,
			StartMonth:     start,
			DurationMonths: clampInt(r.Duration),
			Quantity:       clampInt(r.Quantity),
			EffortPct:      clampPct(r.EffortPct),
		})
	}
	return rows, nil
}

// applyChannelDefaults fills per-type defaults for fields the scenario
// left unset
func applyChannelDefaults(ch *types.Channel) {
	if ch.Turns == 0 {
		switch ch.Type {
		case types.ChannelVoice:
			ch.Turns = defaultVoiceTurns
		case types.ChannelChat:
			ch.Turns = defaultChatTurns
		case types.ChannelEmail:
			ch.Turns = defaultEmailTurns
		}
	}
	if ch.Type == types.ChannelEmail {
		if ch.ContextChars == 0 {
			ch.ContextChars = defaultEmailContextChars
		}
		if ch.SystemComplexity == 0 {
			ch.SystemComplexity = defaultEmailComplexity
		}
	}
}

func parseRegion(s string) types.Region {
	if s == "" {
		return types.RegionUS
	}
	return types.Region(s)
}

func parseRateBand(s string) types.RateBand {
	switch types.RateBand(s) {
	case types.RateBandLow:
		return types.RateBandLow
	case types.RateBandHigh:
		return types.RateBandHigh
	default:
		return types.RateBandMedium
	}
}

func clampInt64(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	return v
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
