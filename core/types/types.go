// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "github.com/shopspring/decimal"

// ChannelType identifies a contact channel
type ChannelType string

const (
	ChannelVoice ChannelType = "Voice"
	ChannelChat  ChannelType = "Chat"
	ChannelEmail ChannelType = "Email"
)

// String returns the string representation
func (c ChannelType) String() string {
	return string(c)
}

// IsValid checks if the channel type is known
func (c ChannelType) IsValid() bool {
	switch c {
	case ChannelVoice, ChannelChat, ChannelEmail:
		return true
	default:
		return false
	}
}

// VendorID identifies a pricing vendor
type VendorID string

const (
	VendorAWS     VendorID = "aws"
	VendorKore    VendorID = "kore"
	VendorYellow  VendorID = "yellow"
	VendorFive9   VendorID = "five9"
	VendorCresta  VendorID = "cresta"
	VendorObserve VendorID = "observe"
)

// AllVendors is the canonical vendor ordering used everywhere a stable
// iteration order matters (aggregation, comparison tables, exports).
var AllVendors = []VendorID{VendorAWS, VendorKore, VendorYellow, VendorFive9, VendorCresta, VendorObserve}

// String returns the string representation
func (v VendorID) String() string {
	return string(v)
}

// IsValid checks if the vendor is known
func (v VendorID) IsValid() bool {
	for _, id := range AllVendors {
		if id == v {
			return true
		}
	}
	return false
}

// DisplayName returns the vendor's marketing name
func (v VendorID) DisplayName() string {
	switch v {
	case VendorAWS:
		return "AWS"
	case VendorKore:
		return "Kore.ai"
	case VendorYellow:
		return "Yellow.ai"
	case VendorFive9:
		return "Five9"
	case VendorCresta:
		return "Cresta"
	case VendorObserve:
		return "Observe.ai"
	default:
		return string(v)
	}
}

// CapabilityID identifies a unit of contact-center functionality
type CapabilityID string

const (
	CapTelephony   CapabilityID = "telephony"
	CapConvIVR     CapabilityID = "civr"
	CapChatbot     CapabilityID = "chatbot"
	CapLiveChat    CapabilityID = "liveChat"
	CapAgentAssist CapabilityID = "agentAssist"
	CapQAAuto      CapabilityID = "qaAuto"
	CapAnalytics   CapabilityID = "analytics"
	CapEmailAuto   CapabilityID = "emailAuto"
)

// String returns the string representation
func (c CapabilityID) String() string {
	return string(c)
}

// Region identifies a pricing region
type Region string

const (
	RegionUS    Region = "US"
	RegionIndia Region = "IN"
)

// String returns the string representation
func (r Region) String() string {
	return string(r)
}

// CostCategory buckets usage cost for portfolio aggregation
type CostCategory string

const (
	CategoryVoice          CostCategory = "voice"
	CategoryDigital        CostCategory = "digital"
	CategoryEmail          CostCategory = "email"
	CategoryAI             CostCategory = "ai"
	CategoryInfrastructure CostCategory = "infrastructure"
)

// RateBand models labor pricing aggressiveness
type RateBand string

const (
	RateBandLow    RateBand = "Low"
	RateBandMedium RateBand = "Medium"
	RateBandHigh   RateBand = "High"
)

// Multiplier returns the labor rate multiplier for the band.
// It applies to implementation labor only, never to vendor usage pricing.
func (b RateBand) Multiplier() decimal.Decimal {
	switch b {
	case RateBandLow:
		return decimal.NewFromFloat(0.9)
	case RateBandHigh:
		return decimal.NewFromFloat(1.15)
	default:
		return decimal.NewFromInt(1)
	}
}
