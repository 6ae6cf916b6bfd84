// Package types - Estimate input snapshot
package types

// Channel is one configured traffic stream. Multiple channels of the same
// type may coexist, each independently configured.
type Channel struct {
	// ID uniquely identifies this channel instance
	ID string `json:"id" yaml:"id"`

	// Type is the channel type (Voice, Chat, Email)
	Type ChannelType `json:"type" yaml:"type"`

	// MonthlyVolume is the inbound contact volume per month
	MonthlyVolume int64 `json:"monthly_volume" yaml:"volume"`

	// AHTMinutes is the average handle time in minutes (Voice/Chat only)
	AHTMinutes float64 `json:"aht_minutes" yaml:"aht_minutes"`

	// OutboundVolume is the outbound contact volume (Voice only)
	OutboundVolume int64 `json:"outbound_volume,omitempty" yaml:"outbound_volume"`

	// OutboundAHTMinutes is the outbound handle time (Voice only)
	OutboundAHTMinutes float64 `json:"outbound_aht_minutes,omitempty" yaml:"outbound_aht_minutes"`

	// ContainmentPct is the share of inbound volume resolved by automation (0-100)
	ContainmentPct int `json:"containment_pct" yaml:"containment_pct"`

	// Turns is the conversational complexity in turns per automated interaction
	Turns int `json:"turns" yaml:"turns"`

	// ModelTier selects the generative model for token-priced capabilities
	ModelTier string `json:"model_tier,omitempty" yaml:"model_tier"`

	// ContextChars is the prompt context window size in characters
	ContextChars int64 `json:"context_chars,omitempty" yaml:"context_chars"`

	// SystemComplexity scales the system prompt contribution to token load
	SystemComplexity int `json:"system_complexity,omitempty" yaml:"system_complexity"`
}

// TotalVolume returns inbound + outbound contacts
func (c Channel) TotalVolume() int64 {
	return c.MonthlyVolume + c.OutboundVolume
}

// Assignment designates exactly one vendor responsible for pricing a
// capability instance on a channel.
type Assignment struct {
	// ChannelID references the channel this capability is attached to
	ChannelID string `json:"channel_id"`

	// Capability is the capability being priced
	Capability CapabilityID `json:"capability"`

	// Vendor is the vendor responsible for pricing it
	Vendor VendorID `json:"vendor"`
}

// ResourceAssignment is one implementation resourcing plan row
type ResourceAssignment struct {
	// ID uniquely identifies the row
	ID string `json:"id"`

	// ChannelType associates the row with a channel stream
	ChannelType ChannelType `json:"channel_type"`

	// Capability associates the row with a capability stream
	Capability CapabilityID `json:"capability"`

	// RoleID references a delivery role
	RoleID string `json:"role_id"`

	// Phase is the delivery phase tag
	Phase string `json:"phase"`

	// StartMonth is the 1-based start month
	StartMonth int `json:"start_month"`

	// DurationMonths is how long the resource is engaged
	DurationMonths int `json:"duration_months"`

	// Quantity is the headcount
	Quantity int `json:"quantity"`

	// EffortPct is the allocation percentage (0-100)
	EffortPct int `json:"effort_pct"`
}

// ClientInfo identifies the deal being estimated
type ClientInfo struct {
	Name       string `json:"name" yaml:"name"`
	Owner      string `json:"owner" yaml:"owner"`
	OwnerEmail string `json:"owner_email" yaml:"owner_email"`
}

// EstimateInput is the immutable input snapshot handed to the engine.
// Calculators must treat it as read-only.
type EstimateInput struct {
	// Client identifies the deal
	Client ClientInfo `json:"client"`

	// Region selects the pricing region table wholesale
	Region Region `json:"region"`

	// Channels are the configured traffic streams
	Channels []Channel `json:"channels"`

	// Assignments map activated (channel, capability) pairs to vendors
	Assignments []Assignment `json:"assignments"`

	// FTE is the shared resource base used by seat-priced vendors
	FTE int64 `json:"fte"`

	// RateBand scales implementation labor rates
	RateBand RateBand `json:"rate_band"`

	// Plan is the implementation resourcing plan
	Plan []ResourceAssignment `json:"plan,omitempty"`
}

// Channel returns the channel with the given ID
func (in *EstimateInput) Channel(id string) (Channel, bool) {
	for _, ch := range in.Channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// HasChannelType reports whether any channel of the given type exists
func (in *EstimateInput) HasChannelType(t ChannelType) bool {
	for _, ch := range in.Channels {
		if ch.Type == t {
			return true
		}
	}
	return false
}

// ActiveCapabilities returns the distinct capabilities present in the
// assignment set, in assignment order.
func (in *EstimateInput) ActiveCapabilities() []CapabilityID {
	seen := make(map[CapabilityID]bool)
	var out []CapabilityID
	for _, a := range in.Assignments {
		if !seen[a.Capability] {
			seen[a.Capability] = true
			out = append(out, a.Capability)
		}
	}
	return out
}
