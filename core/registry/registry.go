// Package registry defines the closed set of recognized capabilities,
// the channels they apply to, and the vendors able to price them.
package registry

import (
	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// Capability describes one unit of functionality
type Capability struct {
	// ID is the capability identifier
	ID types.CapabilityID

	// Label is the human-readable name
	Label string

	// Channels lists the channel types this capability is valid for
	Channels []types.ChannelType

	// Vendors is the ordered list of vendors able to price it. The first
	// entry is the default assignment on activation.
	Vendors []types.VendorID
}

// AppliesTo reports whether the capability is valid for a channel type
func (c Capability) AppliesTo(t types.ChannelType) bool {
	for _, ch := range c.Channels {
		if ch == t {
			return true
		}
	}
	return false
}

// SupportedBy reports whether a vendor can price this capability
func (c Capability) SupportedBy(v types.VendorID) bool {
	for _, id := range c.Vendors {
		if id == v {
			return true
		}
	}
	return false
}

// capabilities is the closed capability set. Kore prices conversational
// IVR but not standalone telephony.
var capabilities = []Capability{
	{types.CapTelephony, "Telephony (DID/Toll-Free)", []types.ChannelType{types.ChannelVoice}, []types.VendorID{types.VendorAWS, types.VendorFive9}},
	{types.CapConvIVR, "Conversational IVR", []types.ChannelType{types.ChannelVoice}, []types.VendorID{types.VendorAWS, types.VendorKore, types.VendorYellow}},
	{types.CapChatbot, "Self-Service Chatbot", []types.ChannelType{types.ChannelChat}, []types.VendorID{types.VendorAWS, types.VendorKore, types.VendorYellow}},
	{types.CapLiveChat, "Live Chat Support", []types.ChannelType{types.ChannelChat}, []types.VendorID{types.VendorAWS, types.VendorFive9}},
	{types.CapAgentAssist, "Agent Assist", []types.ChannelType{types.ChannelVoice, types.ChannelChat}, []types.VendorID{types.VendorAWS, types.VendorKore, types.VendorYellow, types.VendorCresta}},
	{types.CapQAAuto, "QA Automation", []types.ChannelType{types.ChannelVoice, types.ChannelChat}, []types.VendorID{types.VendorAWS, types.VendorObserve}},
	{types.CapAnalytics, "Real Time Analytics", []types.ChannelType{types.ChannelVoice, types.ChannelChat}, []types.VendorID{types.VendorAWS, types.VendorObserve}},
	{types.CapEmailAuto, "Email Automation", []types.ChannelType{types.ChannelEmail}, []types.VendorID{types.VendorAWS}},
}

// All returns the full capability set in declaration order
func All() []Capability {
	out := make([]Capability, len(capabilities))
	copy(out, capabilities)
	return out
}

// Get returns a capability by ID
func Get(id types.CapabilityID) (Capability, bool) {
	for _, c := range capabilities {
		if c.ID == id {
			return c, true
		}
	}
	return Capability{}, false
}

// DefaultVendorFor returns the default vendor assignment for a capability:
// the first vendor in its supported list. Policy: this is applied exactly
// once at capability-activation time and never silently re-applied.
func DefaultVendorFor(id types.CapabilityID) (types.VendorID, bool) {
	c, ok := Get(id)
	if !ok || len(c.Vendors) == 0 {
		return "", false
	}
	return c.Vendors[0], true
}

// ValidateAssignment checks that an assignment references a known
// capability, that the assigned vendor supports it, and that the channel
// type matches the capability's applicability.
func ValidateAssignment(a types.Assignment, channel types.Channel) error {
	c, ok := Get(a.Capability)
	if !ok {
		return errors.NotFound("capability", string(a.Capability))
	}
	if !c.AppliesTo(channel.Type) {
		return errors.Newf(errors.TypeInput, "capability %s does not apply to %s channels", a.Capability, channel.Type)
	}
	if !c.SupportedBy(a.Vendor) {
		return errors.Newf(errors.TypeInput, "vendor %s cannot price capability %s", a.Vendor, a.Capability)
	}
	return nil
}

// AssignedSet is a vendor-scoped view of the assignment list: only the
// capability instances explicitly assigned to that vendor. Calculators
// must consult this, never raw capability support.
type AssignedSet struct {
	vendor   types.VendorID
	byChan   map[string]map[types.CapabilityID]bool
	anything bool
}

// AssignedTo builds the assignment view for one vendor
func AssignedTo(vendor types.VendorID, assignments []types.Assignment) AssignedSet {
	set := AssignedSet{
		vendor: vendor,
		byChan: make(map[string]map[types.CapabilityID]bool),
	}
	for _, a := range assignments {
		if a.Vendor != vendor {
			continue
		}
		caps, ok := set.byChan[a.ChannelID]
		if !ok {
			caps = make(map[types.CapabilityID]bool)
			set.byChan[a.ChannelID] = caps
		}
		caps[a.Capability] = true
		set.anything = true
	}
	return set
}

// Vendor returns the vendor this view is scoped to
func (s AssignedSet) Vendor() types.VendorID {
	return s.vendor
}

// Empty reports whether nothing is assigned to the vendor
func (s AssignedSet) Empty() bool {
	return !s.anything
}

// Has reports whether a capability on a specific channel is assigned
func (s AssignedSet) Has(channelID string, cap types.CapabilityID) bool {
	return s.byChan[channelID][cap]
}

// HasOnChannel reports whether any capability is assigned on a channel
func (s AssignedSet) HasOnChannel(channelID string) bool {
	return len(s.byChan[channelID]) > 0
}

// ActiveVendors derives the distinct vendors assigned to at least one
// capability, in canonical vendor order.
func ActiveVendors(assignments []types.Assignment) []types.VendorID {
	present := make(map[types.VendorID]bool)
	for _, a := range assignments {
		present[a.Vendor] = true
	}
	var out []types.VendorID
	for _, v := range types.AllVendors {
		if present[v] {
			out = append(out, v)
		}
	}
	return out
}
