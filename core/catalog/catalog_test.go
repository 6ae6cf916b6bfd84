package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := Default()
	if err := cat.Validate(); err != nil {
		t.Fatalf("default catalog failed validation: %v", err)
	}
	regions := cat.Regions()
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
}

func TestRegionTablesAreIndependent(t *testing.T) {
	cat := Default()
	us, _ := cat.Region(types.RegionUS)
	in, _ := cat.Region(types.RegionIndia)

	usRate, _ := us.Rate(types.VendorAWS, RateConnectVoiceMin)
	inRate, _ := in.Rate(types.VendorAWS, RateConnectVoiceMin)
	if usRate.Equal(inRate) {
		t.Error("regions should carry distinct absolute prices, not converted copies")
	}
	if us.CurrencySymbol == in.CurrencySymbol {
		t.Error("regions should carry distinct currency symbols")
	}
}

func TestModelFallsBackToDefaultTier(t *testing.T) {
	cat := Default()
	table, _ := cat.Region(types.RegionUS)

	def, ok := table.Model("")
	if !ok {
		t.Fatal("empty tier should resolve to the default model")
	}
	unknown, ok := table.Model("opus-custom")
	if !ok {
		t.Fatal("unknown tier should fall back to the default model")
	}
	if !def.InputPer1K.Equal(unknown.InputPer1K) {
		t.Error("fallback should return the default tier's rates")
	}
}

func TestTierScheduleValidate(t *testing.T) {
	p := decimal.NewFromFloat(0.1)
	tests := []struct {
		name     string
		schedule TierSchedule
		wantErr  bool
	}{
		{
			name:     "valid",
			schedule: TierSchedule{{UpTo: 100, Price: p}, {UpTo: 200, Price: p}, {Price: p}},
		},
		{
			name:    "empty",
			wantErr: true,
		},
		{
			name:     "missing terminal band",
			schedule: TierSchedule{{UpTo: 100, Price: p}, {UpTo: 200, Price: p}},
			wantErr:  true,
		},
		{
			name:     "unbounded band not terminal",
			schedule: TierSchedule{{Price: p}, {UpTo: 100, Price: p}, {Price: p}},
			wantErr:  true,
		},
		{
			name:     "ceilings not increasing",
			schedule: TierSchedule{{UpTo: 200, Price: p}, {UpTo: 100, Price: p}, {Price: p}},
			wantErr:  true,
		},
		{
			name:     "negative price",
			schedule: TierSchedule{{UpTo: 100, Price: decimal.NewFromInt(-1)}, {Price: p}},
			wantErr:  true,
		},
		{
			name:     "single unbounded band",
			schedule: TierSchedule{{Price: p}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestValidateRejectsMissingRate(t *testing.T) {
	cat := Default()
	table, _ := cat.Region(types.RegionUS)
	delete(table.Vendors[types.VendorFive9].Rates, RateVoiceSeat)

	err := cat.Validate()
	if err == nil {
		t.Fatal("expected validation failure for missing rate key")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestValidateRejectsNegativeRate(t *testing.T) {
	cat := Default()
	table, _ := cat.Region(types.RegionUS)
	table.Vendors[types.VendorCresta].Rates[RateAIAssistMin] = decimal.NewFromInt(-1)

	if err := cat.Validate(); err == nil {
		t.Fatal("expected validation failure for negative rate")
	}
}

const overrideHCL = `
region "US" {
  currency_symbol = "$"

  vendor "aws" {
    rate "connect_voice_min" { price = 0.02 }
    rate "did_inbound_min" { price = 0.003 }
    rate "did_outbound_min" { price = 0.005 }
    rate "chat_message" { price = 0.004 }
    rate "lex_speech_turn" { price = 0.007 }
    rate "lex_text_turn" { price = 0.002 }
    rate "agent_assist_min" { price = 0.008 }
    rate "analytics_voice_min" { price = 0.015 }
    rate "qa_per_agent" { price = 14 }
  }

  vendor "kore" {
    rate "civr_session" { price = 0.25 }
    rate "chatbot_session" { price = 0.18 }
    rate "agent_assist_session" { price = 0.26 }
    fixed {
      platform_annual = 50000
      one_time        = 25000
    }
  }

  vendor "yellow" {
    rate "chatbot_session" { price = 0.17 }
    rate "agent_assist_session" { price = 0.25 }
    tier_schedule "civr_voice_min" {
      tier {
        up_to = 100000
        price = 0.20
      }
      tier {
        price = 0.15
      }
    }
    fixed {
      one_time = 12000
    }
  }

  vendor "five9" {
    rate "voice_seat" { price = 175 }
    rate "digital_seat" { price = 125 }
  }

  vendor "cresta" {
    rate "ai_assist_min" { price = 0.06 }
  }

  vendor "observe" {
    rate "per_agent_monthly" { price = 75 }
  }

  model "sonnet" {
    input_per_1k  = 0.003
    output_per_1k = 0.015
  }

  assumptions {
    contained_carriage_minutes = 3
  }
}
`

func TestLoadHCLOverrideReplacesRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(overrideHCL), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	us, ok := cat.Region(types.RegionUS)
	if !ok {
		t.Fatal("US region missing after override")
	}
	seat, _ := us.Rate(types.VendorFive9, RateVoiceSeat)
	if seat.String() != "175" {
		t.Errorf("voice seat = %s, want overridden 175", seat)
	}
	if us.Assumptions.ContainedCarriageMinutes.String() != "3" {
		t.Errorf("carriage = %s, want overridden 3", us.Assumptions.ContainedCarriageMinutes)
	}
	// Assumptions not set in the file keep their defaults.
	if us.Assumptions.CharsPerToken != 4 {
		t.Errorf("chars_per_token = %d, want default 4", us.Assumptions.CharsPerToken)
	}

	// Untouched regions keep the built-in table.
	in, ok := cat.Region(types.RegionIndia)
	if !ok {
		t.Fatal("IN region should survive an override of US")
	}
	if in.CurrencySymbol != "₹" {
		t.Errorf("IN currency = %s, want built-in", in.CurrencySymbol)
	}
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(`region "US" {`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse failure for malformed HCL")
	}
}

func TestLoadRejectsIncompleteOverride(t *testing.T) {
	// Replacing a region wholesale with a table missing vendors must fail
	// validation at load time, not at estimation time.
	incomplete := `
region "US" {
  currency_symbol = "$"
  vendor "aws" {
    rate "connect_voice_min" { price = 0.02 }
  }
  model "sonnet" {
    input_per_1k  = 0.003
    output_per_1k = 0.015
  }
}
`
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(incomplete), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation failure for incomplete region override")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}
