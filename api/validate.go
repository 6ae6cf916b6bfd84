package api

import (
	"cx-cost/core/registry"
	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// validateInput rejects structurally invalid snapshots before they reach
// the engine. Zero volumes and unassigned capabilities are valid inputs;
// only unknown identifiers and malformed references fail.
func validateInput(in *types.EstimateInput) error {
	if in.Region == "" {
		in.Region = types.RegionUS
	}
	seen := make(map[string]bool)
	for _, ch := range in.Channels {
		if ch.ID == "" {
			return errors.Input("channel missing id")
		}
		if seen[ch.ID] {
			return errors.Inputf("duplicate channel id %q", ch.ID)
		}
		seen[ch.ID] = true
		if !ch.Type.IsValid() {
			return errors.Inputf("channel %s: unknown channel type %q", ch.ID, ch.Type)
		}
		if ch.MonthlyVolume < 0 || ch.OutboundVolume < 0 {
			return errors.Inputf("channel %s: negative volume", ch.ID)
		}
		if ch.ContainmentPct < 0 || ch.ContainmentPct > 100 {
			return errors.Inputf("channel %s: containment must be 0-100", ch.ID)
		}
	}
	for _, a := range in.Assignments {
		if a.Vendor == "" {
			continue
		}
		ch, ok := in.Channel(a.ChannelID)
		if !ok {
			return errors.Inputf("assignment references unknown channel %q", a.ChannelID)
		}
		if err := registry.ValidateAssignment(a, ch); err != nil {
			return err
		}
	}
	if in.FTE < 0 {
		return errors.Input("fte must not be negative")
	}
	return nil
}
