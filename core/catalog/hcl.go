// Package catalog - HCL catalog override loader
// An override file replaces whole region tables; there are no per-field
// overrides. Malformed files are fatal at startup.
package catalog

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

type catalogHCL struct {
	Regions []regionHCL `hcl:"region,block"`
}

type regionHCL struct {
	Code           string           `hcl:"code,label"`
	CurrencySymbol string           `hcl:"currency_symbol"`
	Vendors        []vendorHCL      `hcl:"vendor,block"`
	Models         []modelHCL       `hcl:"model,block"`
	Assumptions    *assumptionsHCL  `hcl:"assumptions,block"`
}

type vendorHCL struct {
	ID    string            `hcl:"id,label"`
	Rates []rateHCL         `hcl:"rate,block"`
	Tiers []tierScheduleHCL `hcl:"tier_schedule,block"`
	Fixed *fixedHCL         `hcl:"fixed,block"`
}

type rateHCL struct {
	Key   string  `hcl:"key,label"`
	Price float64 `hcl:"price"`
}

type tierScheduleHCL struct {
	Key   string    `hcl:"key,label"`
	Tiers []tierHCL `hcl:"tier,block"`
}

type tierHCL struct {
	UpTo  int64   `hcl:"up_to,optional"`
	Price float64 `hcl:"price"`
}

type fixedHCL struct {
	PlatformAnnual float64 `hcl:"platform_annual,optional"`
	OneTime        float64 `hcl:"one_time,optional"`
}

type modelHCL struct {
	Tier        string  `hcl:"tier,label"`
	InputPer1K  float64 `hcl:"input_per_1k"`
	OutputPer1K float64 `hcl:"output_per_1k"`
}

type assumptionsHCL struct {
	OutputTokenRatio         *float64 `hcl:"output_token_ratio,optional"`
	CharsPerToken            *int64   `hcl:"chars_per_token,optional"`
	ContainedCarriageMinutes *float64 `hcl:"contained_carriage_minutes,optional"`
	ChatMessagesPerSession   *int64   `hcl:"chat_messages_per_session,optional"`
}

// Load returns the built-in catalog with any regions from the HCL file at
// path swapped in wholesale. The result is validated before being returned.
func Load(path string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeConfig, "failed to parse catalog file", diags)
	}

	var raw catalogHCL
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeConfig, "failed to decode catalog file", diags)
	}

	cat := Default()
	for _, region := range raw.Regions {
		table, err := region.toTable()
		if err != nil {
			return nil, err
		}
		cat.regions[table.Region] = table
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (r regionHCL) toTable() (*RegionTable, error) {
	table := &RegionTable{
		Region:         types.Region(r.Code),
		CurrencySymbol: r.CurrencySymbol,
		Vendors:        make(map[types.VendorID]*VendorRates),
		Models:         make(map[string]ModelRates),
		Assumptions: Assumptions{
			OutputTokenRatio:         d(0.2),
			CharsPerToken:            4,
			ContainedCarriageMinutes: di(2),
			ChatMessagesPerSession:   15,
		},
	}

	for _, v := range r.Vendors {
		vendor := types.VendorID(v.ID)
		if !vendor.IsValid() {
			return nil, errors.Configf("region %s: unknown vendor %q", r.Code, v.ID)
		}
		rates := &VendorRates{Rates: make(map[string]decimal.Decimal)}
		for _, rate := range v.Rates {
			rates.Rates[rate.Key] = decimal.NewFromFloat(rate.Price)
		}
		for _, schedule := range v.Tiers {
			if rates.Tiers == nil {
				rates.Tiers = make(map[string]TierSchedule)
			}
			var tiers TierSchedule
			for _, t := range schedule.Tiers {
				tiers = append(tiers, Tier{UpTo: t.UpTo, Price: decimal.NewFromFloat(t.Price)})
			}
			rates.Tiers[schedule.Key] = tiers
		}
		if v.Fixed != nil {
			rates.Fixed = types.FixedFees{
				PlatformAnnual: decimal.NewFromFloat(v.Fixed.PlatformAnnual),
				OneTime:        decimal.NewFromFloat(v.Fixed.OneTime),
			}
		}
		table.Vendors[vendor] = rates
	}

	for _, m := range r.Models {
		table.Models[m.Tier] = ModelRates{
			InputPer1K:  decimal.NewFromFloat(m.InputPer1K),
			OutputPer1K: decimal.NewFromFloat(m.OutputPer1K),
		}
	}

	if a := r.Assumptions; a != nil {
		if a.OutputTokenRatio != nil {
			table.Assumptions.OutputTokenRatio = decimal.NewFromFloat(*a.OutputTokenRatio)
		}
		if a.CharsPerToken != nil {
			table.Assumptions.CharsPerToken = *a.CharsPerToken
		}
		if a.ContainedCarriageMinutes != nil {
			table.Assumptions.ContainedCarriageMinutes = decimal.NewFromFloat(*a.ContainedCarriageMinutes)
		}
		if a.ChatMessagesPerSession != nil {
			table.Assumptions.ChatMessagesPerSession = *a.ChatMessagesPerSession
		}
	}

	return table, nil
}
