// Package vendors - AWS Connect calculator
// Prices the Connect usage stack: per-minute voice channel usage with a
// carriage allowance for contained calls, DID telephony minutes, Lex
// speech/text automation turns, agent assist minutes, Contact Lens
// analytics minutes, per-agent QA fees, and Bedrock token-estimated email
// automation.
package vendors

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cx-cost/core/catalog"
	"cx-cost/core/pricing"
	"cx-cost/core/registry"
	"cx-cost/core/types"
)

// AWSCalculator prices capabilities assigned to AWS
type AWSCalculator struct{}

// Vendor returns the vendor identifier
func (c *AWSCalculator) Vendor() types.VendorID {
	return types.VendorAWS
}

// Compute builds the AWS cost breakdown
func (c *AWSCalculator) Compute(in *types.EstimateInput, assigned registry.AssignedSet, table *catalog.RegionTable) *types.CostBreakdown {
	b := types.NewCostBreakdown(types.VendorAWS)
	if assigned.Empty() {
		return b
	}

	perAgentCharged := false
	for _, ch := range in.Channels {
		if !assigned.HasOnChannel(ch.ID) {
			continue
		}
		switch ch.Type {
		case types.ChannelVoice:
			c.voiceItems(b, in, ch, assigned, table, &perAgentCharged)
		case types.ChannelChat:
			c.chatItems(b, in, ch, assigned, table, &perAgentCharged)
		case types.ChannelEmail:
			c.emailItems(b, ch, assigned, table)
		}
	}
	return b
}

func (c *AWSCalculator) voiceItems(b *types.CostBreakdown, in *types.EstimateInput, ch types.Channel, assigned registry.AssignedSet, table *catalog.RegionTable, perAgentCharged *bool) {
	split := pricing.ContainmentSplit(ch.MonthlyVolume, ch.ContainmentPct)
	liveMins := pricing.Minutes(split.Live, ch.AHTMinutes).
		Add(pricing.Minutes(decimal.NewFromInt(ch.OutboundVolume), ch.OutboundAHTMinutes))
	totalMins := pricing.Minutes(decimal.NewFromInt(ch.MonthlyVolume), ch.AHTMinutes).
		Add(pricing.Minutes(decimal.NewFromInt(ch.OutboundVolume), ch.OutboundAHTMinutes))

	channel := string(ch.Type)
	voiceStart := b.Voice

	carriesTraffic := assigned.Has(ch.ID, types.CapTelephony) || assigned.Has(ch.ID, types.CapConvIVR)
	if carriesTraffic {
		perMin := rate(table, types.VendorAWS, catalog.RateConnectVoiceMin)
		carriage := split.Contained.Mul(table.Assumptions.ContainedCarriageMinutes)
		usage := liveMins.Add(carriage).Mul(perMin)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Voice Channel Usage",
			Amount:   usage,
			RateNote: perUnitNote(table, perMin, "min"),
			Category: types.CategoryVoice,
		})

		didIn := rate(table, types.VendorAWS, catalog.RateDIDInboundMin)
		inbound := pricing.Minutes(decimal.NewFromInt(ch.MonthlyVolume), ch.AHTMinutes).Mul(didIn)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "DID Inbound",
			Amount:   inbound,
			RateNote: perUnitNote(table, didIn, "min"),
			Category: types.CategoryVoice,
		})
		if ch.OutboundVolume > 0 {
			didOut := rate(table, types.VendorAWS, catalog.RateDIDOutboundMin)
			outbound := pricing.Minutes(decimal.NewFromInt(ch.OutboundVolume), ch.OutboundAHTMinutes).Mul(didOut)
			b.AddItem(types.LineItem{
				Channel:  channel,
				Label:    "DID Outbound",
				Amount:   outbound,
				RateNote: perUnitNote(table, didOut, "min"),
				Category: types.CategoryVoice,
			})
		}
	}

	if assigned.Has(ch.ID, types.CapConvIVR) && ch.Turns > 0 {
		turnRate := rate(table, types.VendorAWS, catalog.RateLexSpeechTurn)
		lex := decimal.NewFromInt(ch.TotalVolume()).
			Mul(decimal.NewFromInt(int64(ch.Turns))).
			Mul(turnRate)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Lex Voice Automation",
			Amount:   lex,
			RateNote: perUnitNote(table, turnRate, "turn"),
			Category: types.CategoryAI,
		})
	}

	if assigned.Has(ch.ID, types.CapAgentAssist) {
		assistRate := rate(table, types.VendorAWS, catalog.RateAgentAssistMin)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Agent Assist",
			Amount:   liveMins.Mul(assistRate),
			RateNote: perUnitNote(table, assistRate, "min"),
			Category: types.CategoryAI,
		})
	}

	if carriesTraffic {
		b.AddTotal(channel, "Voice Total Cost", b.Voice.Sub(voiceStart), "Sum of Voice drivers")
	}

	if assigned.Has(ch.ID, types.CapAnalytics) {
		perMin := rate(table, types.VendorAWS, catalog.RateAnalyticsVoiceMin)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Real Time Analytics",
			Amount:   totalMins.Mul(perMin),
			RateNote: perUnitNote(table, perMin, "min"),
			Category: types.CategoryInfrastructure,
		})
	}
	if assigned.Has(ch.ID, types.CapQAAuto) && !*perAgentCharged {
		perAgent := rate(table, types.VendorAWS, catalog.RateQAPerAgent)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "QA Automation extras",
			Amount:   decimal.NewFromInt(in.FTE).Mul(perAgent),
			RateNote: perUnitNote(table, perAgent, "agent"),
			Category: types.CategoryInfrastructure,
		})
		*perAgentCharged = true
	}
}

func (c *AWSCalculator) chatItems(b *types.CostBreakdown, in *types.EstimateInput, ch types.Channel, assigned registry.AssignedSet, table *catalog.RegionTable, perAgentCharged *bool) {
	split := pricing.ContainmentSplit(ch.MonthlyVolume, ch.ContainmentPct)
	channel := string(ch.Type)
	digitalStart := b.Digital

	if assigned.Has(ch.ID, types.CapLiveChat) {
		perMsg := rate(table, types.VendorAWS, catalog.RateChatMessage)
		msgs := split.Live.Mul(decimal.NewFromInt(table.Assumptions.ChatMessagesPerSession))
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Chat Channel Usage",
			Amount:   msgs.Mul(perMsg),
			RateNote: perUnitNote(table, perMsg, "msg"),
			Category: types.CategoryDigital,
		})
	}

	if assigned.Has(ch.ID, types.CapChatbot) && ch.Turns > 0 {
		turnRate := rate(table, types.VendorAWS, catalog.RateLexTextTurn)
		lex := decimal.NewFromInt(ch.MonthlyVolume).
			Mul(decimal.NewFromInt(int64(ch.Turns))).
			Mul(turnRate)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Lex Chatbot Automation",
			Amount:   lex,
			RateNote: perUnitNote(table, turnRate, "turn"),
			Category: types.CategoryAI,
		})
	}

	if assigned.Has(ch.ID, types.CapAgentAssist) {
		assistRate := rate(table, types.VendorAWS, catalog.RateAgentAssistMin)
		liveMins := pricing.Minutes(split.Live, ch.AHTMinutes)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Agent Assist",
			Amount:   liveMins.Mul(assistRate),
			RateNote: perUnitNote(table, assistRate, "min"),
			Category: types.CategoryAI,
		})
	}

	if assigned.Has(ch.ID, types.CapLiveChat) {
		b.AddTotal(channel, "Chat Total Cost", b.Digital.Sub(digitalStart), "Sum of Chat drivers")
	}

	if assigned.Has(ch.ID, types.CapAnalytics) {
		perMin := rate(table, types.VendorAWS, catalog.RateAnalyticsVoiceMin)
		totalMins := pricing.Minutes(decimal.NewFromInt(ch.MonthlyVolume), ch.AHTMinutes)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "Real Time Analytics",
			Amount:   totalMins.Mul(perMin),
			RateNote: perUnitNote(table, perMin, "min"),
			Category: types.CategoryInfrastructure,
		})
	}
	if assigned.Has(ch.ID, types.CapQAAuto) && !*perAgentCharged {
		perAgent := rate(table, types.VendorAWS, catalog.RateQAPerAgent)
		b.AddItem(types.LineItem{
			Channel:  channel,
			Label:    "QA Automation extras",
			Amount:   decimal.NewFromInt(in.FTE).Mul(perAgent),
			RateNote: perUnitNote(table, perAgent, "agent"),
			Category: types.CategoryInfrastructure,
		})
		*perAgentCharged = true
	}
}

func (c *AWSCalculator) emailItems(b *types.CostBreakdown, ch types.Channel, assigned registry.AssignedSet, table *catalog.RegionTable) {
	if !assigned.Has(ch.ID, types.CapEmailAuto) {
		return
	}
	model, ok := table.Model(ch.ModelTier)
	if !ok {
		return
	}
	tokens := pricing.EstimateTokens(ch.ContextChars, ch.SystemComplexity, table.Assumptions)
	turns := int64(ch.Turns)
	if turns <= 0 {
		turns = 1
	}
	total := tokens.TurnCost(model).
		Mul(decimal.NewFromInt(ch.MonthlyVolume)).
		Mul(decimal.NewFromInt(turns))

	channel := string(ch.Type)
	tier := ch.ModelTier
	if tier == "" {
		tier = catalog.DefaultModelTier
	}
	b.AddItem(types.LineItem{
		Channel:  channel,
		Label:    "Bedrock GenAI",
		Amount:   total,
		RateNote: fmt.Sprintf("%s in/out per 1k tokens (%s)", table.CurrencySymbol, tier),
		Category: types.CategoryEmail,
	})
	b.AddTotal(channel, "Email Total Cost", total, "Sum of Email drivers")
}
