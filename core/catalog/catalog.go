// Package catalog - Authoritative vendor pricing catalog
// Per-region, per-vendor unit prices and tiered-rate schedules.
// Pure data, immutable after load; malformed catalogs are fatal at startup.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// Rate keys recognized by the vendor calculators
const (
	RateConnectVoiceMin    = "connect_voice_min"
	RateDIDInboundMin      = "did_inbound_min"
	RateDIDOutboundMin     = "did_outbound_min"
	RateChatMessage        = "chat_message"
	RateLexSpeechTurn      = "lex_speech_turn"
	RateLexTextTurn        = "lex_text_turn"
	RateAgentAssistMin     = "agent_assist_min"
	RateAnalyticsVoiceMin  = "analytics_voice_min"
	RateQAPerAgent         = "qa_per_agent"
	RateVoiceSeat          = "voice_seat"
	RateDigitalSeat        = "digital_seat"
	RateCIVRSession        = "civr_session"
	RateChatbotSession     = "chatbot_session"
	RateAgentAssistSession = "agent_assist_session"
	RateAIAssistMin        = "ai_assist_min"
	RatePerAgentMonthly    = "per_agent_monthly"
)

// TierCIVRVoiceMin is the tier schedule key for tiered conversational-IVR
// voice minutes.
const TierCIVRVoiceMin = "civr_voice_min"

// Tier is one band of a tiered-rate schedule. UpTo is the cumulative usage
// ceiling for the band; zero marks the unbounded terminal band.
type Tier struct {
	UpTo  int64           `json:"up_to"`
	Price decimal.Decimal `json:"price"`
}

// Unbounded reports whether this is the terminal band
func (t Tier) Unbounded() bool {
	return t.UpTo == 0
}

// TierSchedule is an ordered list of bands with strictly increasing
// ceilings and an unbounded terminal band.
type TierSchedule []Tier

// Validate enforces the schedule invariants
func (s TierSchedule) Validate() error {
	if len(s) == 0 {
		return errors.Config("tier schedule is empty")
	}
	var prev int64
	for i, tier := range s {
		last := i == len(s)-1
		if last {
			if !tier.Unbounded() {
				return errors.Config("tier schedule missing unbounded terminal tier")
			}
			continue
		}
		if tier.Unbounded() {
			return errors.Configf("unbounded tier at position %d is not terminal", i)
		}
		if tier.UpTo <= prev {
			return errors.Configf("tier ceilings not strictly increasing at position %d", i)
		}
		prev = tier.UpTo
	}
	for i, tier := range s {
		if tier.Price.IsNegative() {
			return errors.Configf("negative tier price at position %d", i)
		}
	}
	return nil
}

// ModelRates are generative-model token prices per 1k tokens
type ModelRates struct {
	InputPer1K  decimal.Decimal `json:"input_per_1k"`
	OutputPer1K decimal.Decimal `json:"output_per_1k"`
}

// Assumptions are business heuristics preserved as tunable parameters
// rather than hard-coded literals.
type Assumptions struct {
	// OutputTokenRatio estimates output tokens as a fraction of input tokens
	OutputTokenRatio decimal.Decimal `json:"output_token_ratio"`

	// CharsPerToken converts context characters to tokens
	CharsPerToken int64 `json:"chars_per_token"`

	// ContainedCarriageMinutes is the transport allowance billed per
	// contained voice interaction
	ContainedCarriageMinutes decimal.Decimal `json:"contained_carriage_minutes"`

	// ChatMessagesPerSession converts live chat sessions to billable messages
	ChatMessagesPerSession int64 `json:"chat_messages_per_session"`
}

// VendorRates is one vendor's price schedule within a region
type VendorRates struct {
	// Rates maps rate-key to unit price
	Rates map[string]decimal.Decimal `json:"rates"`

	// Tiers maps rate-key to tiered schedules
	Tiers map[string]TierSchedule `json:"tiers,omitempty"`

	// Fixed holds recurring/one-time fees
	Fixed types.FixedFees `json:"fixed"`
}

// Rate returns a unit price by key
func (v *VendorRates) Rate(key string) (decimal.Decimal, bool) {
	r, ok := v.Rates[key]
	return r, ok
}

// TierScheduleFor returns a tier schedule by key
func (v *VendorRates) TierScheduleFor(key string) (TierSchedule, bool) {
	s, ok := v.Tiers[key]
	return s, ok
}

// RegionTable is the complete price table for one region. Switching region
// re-selects the table wholesale.
type RegionTable struct {
	// Region is the region code
	Region types.Region `json:"region"`

	// CurrencySymbol is the display symbol for this region's prices
	CurrencySymbol string `json:"currency_symbol"`

	// Vendors maps vendor to its rate schedule
	Vendors map[types.VendorID]*VendorRates `json:"vendors"`

	// Models maps model tier to token rates
	Models map[string]ModelRates `json:"models"`

	// Assumptions are the region's tunable heuristics
	Assumptions Assumptions `json:"assumptions"`
}

// Vendor returns a vendor's rate schedule
func (t *RegionTable) Vendor(id types.VendorID) (*VendorRates, bool) {
	v, ok := t.Vendors[id]
	return v, ok
}

// Rate resolves a vendor unit price
func (t *RegionTable) Rate(vendor types.VendorID, key string) (decimal.Decimal, bool) {
	v, ok := t.Vendors[vendor]
	if !ok {
		return decimal.Zero, false
	}
	return v.Rate(key)
}

// Model resolves token rates for a model tier, falling back to the default
// tier when the requested one is unknown.
func (t *RegionTable) Model(tier string) (ModelRates, bool) {
	if tier == "" {
		tier = DefaultModelTier
	}
	m, ok := t.Models[tier]
	if !ok {
		m, ok = t.Models[DefaultModelTier]
	}
	return m, ok
}

// DefaultModelTier is used when a channel does not select a model
const DefaultModelTier = "sonnet"

// Catalog holds all region tables. Immutable after load; safe for
// concurrent readers.
type Catalog struct {
	regions map[types.Region]*RegionTable
}

// Region returns the table for a region
func (c *Catalog) Region(r types.Region) (*RegionTable, bool) {
	t, ok := c.regions[r]
	return t, ok
}

// Regions lists available region codes in sorted order
func (c *Catalog) Regions() []types.Region {
	out := make([]types.Region, 0, len(c.regions))
	for r := range c.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// requiredRateKeys enumerates the price keys each vendor's calculator reads.
// A selected vendor with a missing key is a configuration error.
var requiredRateKeys = map[types.VendorID][]string{
	types.VendorAWS: {
		RateConnectVoiceMin, RateDIDInboundMin, RateDIDOutboundMin,
		RateChatMessage, RateLexSpeechTurn, RateLexTextTurn,
		RateAgentAssistMin, RateAnalyticsVoiceMin, RateQAPerAgent,
	},
	types.VendorKore:    {RateCIVRSession, RateChatbotSession, RateAgentAssistSession},
	types.VendorYellow:  {RateChatbotSession, RateAgentAssistSession},
	types.VendorFive9:   {RateVoiceSeat, RateDigitalSeat},
	types.VendorCresta:  {RateAIAssistMin},
	types.VendorObserve: {RatePerAgentMonthly},
}

// requiredTierKeys enumerates mandatory tier schedules per vendor
var requiredTierKeys = map[types.VendorID][]string{
	types.VendorYellow: {TierCIVRVoiceMin},
}

// Validate checks catalog integrity. Called once at load; failures are
// fatal configuration errors.
func (c *Catalog) Validate() error {
	if len(c.regions) == 0 {
		return errors.Config("catalog has no regions")
	}
	for region, table := range c.regions {
		if table.CurrencySymbol == "" {
			return errors.Configf("region %s: missing currency symbol", region)
		}
		for vendor, keys := range requiredRateKeys {
			rates, ok := table.Vendors[vendor]
			if !ok {
				return errors.Configf("region %s: missing vendor %s", region, vendor)
			}
			for _, key := range keys {
				price, ok := rates.Rate(key)
				if !ok {
					return errors.Configf("region %s: vendor %s missing rate %q", region, vendor, key)
				}
				if price.IsNegative() {
					return errors.Configf("region %s: vendor %s rate %q is negative", region, vendor, key)
				}
			}
		}
		for vendor, keys := range requiredTierKeys {
			rates := table.Vendors[vendor]
			for _, key := range keys {
				schedule, ok := rates.TierScheduleFor(key)
				if !ok {
					return errors.Configf("region %s: vendor %s missing tier schedule %q", region, vendor, key)
				}
				if err := schedule.Validate(); err != nil {
					return errors.Wrapf(errors.TypeConfig, err, "region %s: vendor %s tier schedule %q", region, vendor, key)
				}
			}
		}
		for vendor, rates := range table.Vendors {
			for key, schedule := range rates.Tiers {
				if err := schedule.Validate(); err != nil {
					return errors.Wrapf(errors.TypeConfig, err, "region %s: vendor %s tier schedule %q", region, vendor, key)
				}
			}
		}
		if _, ok := table.Models[DefaultModelTier]; !ok {
			return errors.Configf("region %s: missing default model tier %q", region, DefaultModelTier)
		}
		a := table.Assumptions
		if a.CharsPerToken <= 0 {
			return errors.Configf("region %s: chars_per_token must be positive", region)
		}
		if a.OutputTokenRatio.IsNegative() {
			return errors.Configf("region %s: output_token_ratio must be non-negative", region)
		}
		if a.ContainedCarriageMinutes.IsNegative() {
			return errors.Configf("region %s: contained_carriage_minutes must be non-negative", region)
		}
		if a.ChatMessagesPerSession <= 0 {
			return errors.Configf("region %s: chat_messages_per_session must be positive", region)
		}
	}
	return nil
}
