package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cx-cost/core/catalog"
	"cx-cost/core/engine"
	"cx-cost/core/types"
)

func testReport(t *testing.T) *Report {
	t.Helper()
	in := &types.EstimateInput{
		Client:   types.ClientInfo{Name: "Acme"},
		Region:   types.RegionUS,
		RateBand: types.RateBandMedium,
		FTE:      10,
		Channels: []types.Channel{
			{
				ID: "Voice-1", Type: types.ChannelVoice,
				MonthlyVolume: 10000, AHTMinutes: 5,
				ContainmentPct: 40, Turns: 5,
			},
		},
		Assignments: []types.Assignment{
			{ChannelID: "Voice-1", Capability: types.CapTelephony, Vendor: types.VendorFive9},
			{ChannelID: "Voice-1", Capability: types.CapQAAuto, Vendor: types.VendorObserve},
		},
		Plan: []types.ResourceAssignment{
			{
				ID: "plan-1", ChannelType: types.ChannelVoice, Capability: types.CapConvIVR,
				RoleID: "pm", Phase: "Build", StartMonth: 1, DurationMonths: 2,
				Quantity: 1, EffortPct: 100,
			},
		},
	}

	eng := engine.Default()
	agg, err := eng.Estimate(in)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	table, _ := catalog.Default().Region(types.RegionUS)
	return &Report{Input: in, Financials: agg, Table: table}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	return records
}

func findRow(records [][]string, label string) []string {
	for _, rec := range records {
		if len(rec) > 0 && rec[0] == label {
			return rec
		}
	}
	return nil
}

func TestWriteModelCSV(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	if err := WriteModelCSV(&buf, r); err != nil {
		t.Fatalf("WriteModelCSV failed: %v", err)
	}
	records := parseCSV(t, buf.Bytes())

	title := records[0]
	if title[0] != "CX Cost Engine" || title[2] != "Five9 + Observe.ai" {
		t.Errorf("title row = %v", title)
	}

	header := findRow(records, "Solution")
	if header == nil || len(header) != modelMonths+1 {
		t.Fatalf("model header = %v, want %d month columns", header, modelMonths)
	}
	if header[1] != "M1" || header[modelMonths] != "M24" {
		t.Errorf("month columns = %s..%s", header[1], header[modelMonths])
	}

	volume := findRow(records, "Volume")
	if volume == nil || volume[1] != "10000" || volume[modelMonths] != "10000" {
		t.Errorf("volume row = %v", volume)
	}

	// 10 agents on the voice seat rate.
	if row := findRow(records, "Five9 Seats [$159/agent]"); row == nil {
		t.Error("missing Five9 seat line item")
	} else if row[1] != "1590" {
		t.Errorf("seat line amount = %s, want 1590", row[1])
	}

	summary := findRow(records, "Tech run cost (annualized)")
	if summary == nil {
		t.Fatal("missing summary row")
	}
	if summary[1] != summary[2] {
		t.Errorf("annualized run differs across years: %v", summary)
	}
	oneTime := findRow(records, "Implementation cost (one time)")
	if oneTime == nil || oneTime[1] != "$9000" || oneTime[2] != "$0" {
		t.Errorf("implementation row = %v, want $9000 in year 1 only", oneTime)
	}

	if row := findRow(records, "Voice-1 Containment (%)"); row == nil || row[1] != "40" {
		t.Errorf("containment assumption = %v", row)
	}
	if findRow(records, "Solution Stream: Conversational IVR") == nil {
		t.Error("missing resource group header")
	}
}

func TestExportWorkbook(t *testing.T) {
	r := testReport(t)
	dir := t.TempDir()

	paths, err := ExportWorkbook(dir, "acme", r)
	if err != nil {
		t.Fatalf("ExportWorkbook failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v, want 3 sheets", paths)
	}
	for i, suffix := range []string{"acme_costs.csv", "acme_plan.csv", "acme_resources.csv"} {
		if filepath.Base(paths[i]) != suffix {
			t.Errorf("sheet %d = %s, want %s", i, paths[i], suffix)
		}
	}

	costs := parseCSV(t, readFile(t, paths[0]))
	ramp := findRow(costs, "Containment (%)")
	if ramp == nil || len(ramp) != 13 {
		t.Fatalf("ramp row = %v", ramp)
	}
	// Build ends M2, so go-live lands in M3 and the ramp starts there.
	want := []string{"0", "0", "10", "10", "10", "20", "20", "20", "40", "40", "40", "40"}
	for m, v := range want {
		if ramp[m+1] != v {
			t.Errorf("ramp M%d = %s, want %s", m+1, ramp[m+1], v)
		}
	}
	if row := findRow(costs, "Go Live month (derived)"); row == nil || row[1] != "3" {
		t.Errorf("go live row = %v, want month 3", row)
	}
	minutes := findRow(costs, "Total Billable Minutes")
	if minutes == nil || minutes[1] != "50000" || minutes[12] != "30000" {
		t.Errorf("billable minutes = %v, want 50000 pre-ramp and 30000 at target", minutes)
	}
	if row := findRow(costs, "Total monthly tech run cost"); row == nil || row[1] != "2280" {
		t.Errorf("total monthly row = %v, want 2280", row)
	}

	planSheet := parseCSV(t, readFile(t, paths[1]))
	stream := findRow(planSheet, "Conversational IVR")
	if stream == nil {
		t.Fatal("plan sheet missing capability stream row")
	}
	if stream[1] != "Build" || stream[2] != "Build" || stream[3] != "Go Live" || stream[4] != "Hypercare" {
		t.Errorf("phase months = %v", stream[1:5])
	}
	if findRow(planSheet, "Legend") == nil {
		t.Error("plan sheet missing legend")
	}

	resources := parseCSV(t, readFile(t, paths[2]))
	row := findRow(resources, "Voice")
	if row == nil {
		t.Fatal("resources sheet missing plan row")
	}
	if row[2] != "Project Manager" || row[9] != "9000" {
		t.Errorf("resource row = %v, want Project Manager costing 9000", row)
	}
}

func TestVendorNamesEmpty(t *testing.T) {
	r := &Report{Financials: &types.AggregatedFinancials{}}
	if got := r.vendorNames(); got != "none" {
		t.Errorf("vendorNames = %q, want none", got)
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

func TestExportModelCSV(t *testing.T) {
	r := testReport(t)
	path := filepath.Join(t.TempDir(), "model.csv")
	if err := ExportModelCSV(path, r); err != nil {
		t.Fatalf("ExportModelCSV failed: %v", err)
	}
	data := readFile(t, path)
	if !strings.HasPrefix(string(data), "CX Cost Engine,") {
		t.Errorf("file starts with %q", string(data[:20]))
	}
}
