// Package catalog - Built-in region tables
package catalog

import (
	"github.com/shopspring/decimal"

	"cx-cost/core/types"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func di(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Default returns the built-in catalog. Prices are static list prices per
// region; regions carry distinct absolute unit prices, never a converted
// common currency.
func Default() *Catalog {
	return &Catalog{
		regions: map[types.Region]*RegionTable{
			types.RegionUS:    usRegion(),
			types.RegionIndia: indiaRegion(),
		},
	}
}

func usRegion() *RegionTable {
	return &RegionTable{
		Region:         types.RegionUS,
		CurrencySymbol: "$",
		Vendors: map[types.VendorID]*VendorRates{
			types.VendorAWS: {
				Rates: map[string]decimal.Decimal{
					RateConnectVoiceMin:   d(0.018),
					RateDIDInboundMin:     d(0.0022),
					RateDIDOutboundMin:    d(0.0048),
					RateChatMessage:       d(0.004),
					RateLexSpeechTurn:     d(0.0065),
					RateLexTextTurn:       d(0.0020),
					RateAgentAssistMin:    d(0.0080),
					RateAnalyticsVoiceMin: d(0.015),
					RateQAPerAgent:        di(12),
				},
			},
			types.VendorKore: {
				Rates: map[string]decimal.Decimal{
					RateCIVRSession:        d(0.21),
					RateChatbotSession:     d(0.16),
					RateAgentAssistSession: d(0.24),
				},
				Fixed: types.FixedFees{
					PlatformAnnual: di(40000),
					OneTime:        di(20000),
				},
			},
			types.VendorYellow: {
				Rates: map[string]decimal.Decimal{
					RateChatbotSession:     d(0.16),
					RateAgentAssistSession: d(0.24),
				},
				Tiers: map[string]TierSchedule{
					TierCIVRVoiceMin: {
						{UpTo: 200000, Price: d(0.18)},
						{UpTo: 400000, Price: d(0.16)},
						{Price: d(0.14)},
					},
				},
				Fixed: types.FixedFees{
					OneTime: di(10000),
				},
			},
			types.VendorFive9: {
				Rates: map[string]decimal.Decimal{
					RateVoiceSeat:   di(159),
					RateDigitalSeat: di(119),
				},
			},
			types.VendorCresta: {
				Rates: map[string]decimal.Decimal{
					RateAIAssistMin: d(0.05),
				},
			},
			types.VendorObserve: {
				Rates: map[string]decimal.Decimal{
					RatePerAgentMonthly: di(69),
				},
			},
		},
		Models: map[string]ModelRates{
			"sonnet": {InputPer1K: d(0.003), OutputPer1K: d(0.015)},
			"haiku":  {InputPer1K: d(0.00025), OutputPer1K: d(0.00125)},
		},
		Assumptions: Assumptions{
			OutputTokenRatio:         d(0.2),
			CharsPerToken:            4,
			ContainedCarriageMinutes: di(2),
			ChatMessagesPerSession:   15,
		},
	}
}

func indiaRegion() *RegionTable {
	return &RegionTable{
		Region:         types.RegionIndia,
		CurrencySymbol: "₹",
		Vendors: map[types.VendorID]*VendorRates{
			types.VendorAWS: {
				Rates: map[string]decimal.Decimal{
					RateConnectVoiceMin:   d(1.50),
					RateDIDInboundMin:     d(0.18),
					RateDIDOutboundMin:    d(0.40),
					RateChatMessage:       d(0.33),
					RateLexSpeechTurn:     d(0.54),
					RateLexTextTurn:       d(0.17),
					RateAgentAssistMin:    d(0.66),
					RateAnalyticsVoiceMin: d(1.25),
					RateQAPerAgent:        di(1000),
				},
			},
			types.VendorKore: {
				Rates: map[string]decimal.Decimal{
					RateCIVRSession:        d(17.50),
					RateChatbotSession:     d(13.20),
					RateAgentAssistSession: d(19.80),
				},
				Fixed: types.FixedFees{
					PlatformAnnual: di(3300000),
					OneTime:        di(1650000),
				},
			},
			types.VendorYellow: {
				Rates: map[string]decimal.Decimal{
					RateChatbotSession:     d(13.20),
					RateAgentAssistSession: d(19.80),
				},
				Tiers: map[string]TierSchedule{
					TierCIVRVoiceMin: {
						{UpTo: 200000, Price: d(15.00)},
						{UpTo: 400000, Price: d(13.20)},
						{Price: d(11.60)},
					},
				},
				Fixed: types.FixedFees{
					OneTime: di(830000),
				},
			},
			types.VendorFive9: {
				Rates: map[string]decimal.Decimal{
					RateVoiceSeat:   di(13000),
					RateDigitalSeat: di(9800),
				},
			},
			types.VendorCresta: {
				Rates: map[string]decimal.Decimal{
					RateAIAssistMin: d(4.15),
				},
			},
			types.VendorObserve: {
				Rates: map[string]decimal.Decimal{
					RatePerAgentMonthly: di(5700),
				},
			},
		},
		Models: map[string]ModelRates{
			"sonnet": {InputPer1K: d(0.25), OutputPer1K: d(1.25)},
			"haiku":  {InputPer1K: d(0.021), OutputPer1K: d(0.104)},
		},
		Assumptions: Assumptions{
			OutputTokenRatio:         d(0.2),
			CharsPerToken:            4,
			ContainedCarriageMinutes: di(2),
			ChatMessagesPerSession:   15,
		},
	}
}
