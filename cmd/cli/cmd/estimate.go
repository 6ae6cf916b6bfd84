// Package cmd - estimate command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cx-cost/adapters/export"
	"cx-cost/adapters/storage"
	"cx-cost/core/input"
	"cx-cost/core/plan"
	"cx-cost/core/types"
	"cx-cost/internal/config"
	"cx-cost/internal/logging"
)

var (
	estimateRegion string
	exportCSV      bool
	exportWorkbook bool
	saveDeal       bool
	showItems      bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [scenario.yaml]",
	Short: "Estimate costs for a scenario",
	Long: `Price a channel and capability portfolio across its assigned vendors.

The scenario file describes the client, channels, capability activations,
and optionally a resourcing plan.

Examples:
  cx-cost estimate scenario.yaml
  cx-cost estimate --region IN scenario.yaml
  cx-cost estimate --export-csv --save scenario.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateRegion, "region", "r", "", "pricing region override (US, IN)")
	estimateCmd.Flags().BoolVar(&exportCSV, "export-csv", false, "write the 24-month cost model CSV")
	estimateCmd.Flags().BoolVar(&exportWorkbook, "export-workbook", false, "write the three-sheet workbook CSVs")
	estimateCmd.Flags().BoolVar(&saveDeal, "save", false, "archive the estimate to the deal store")
	estimateCmd.Flags().BoolVarP(&showItems, "details", "d", true, "show itemized cost breakdown")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	in, err := input.LoadFile(args[0])
	if err != nil {
		return err
	}
	if estimateRegion != "" {
		in.Region = types.Region(estimateRegion)
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	logging.Info("Starting cost estimation")
	agg, err := eng.Estimate(in)
	if err != nil {
		return err
	}

	table, _ := eng.Catalog().Region(in.Region)
	report := &export.Report{Input: in, Financials: agg, Table: table}

	printEstimate(report)
	fmt.Printf("\nEstimation completed in %s\n", time.Since(start).Round(time.Millisecond))

	if exportCSV || exportWorkbook {
		if err := writeExports(report); err != nil {
			return err
		}
	}
	if saveDeal {
		archiveDeal(in, agg)
	}
	return nil
}

func writeExports(report *export.Report) error {
	cfg := config.Get()
	base := report.Input.Client.Name
	if base == "" {
		base = "estimate"
	}
	base = strings.ReplaceAll(base, " ", "_")

	if exportCSV {
		path := filepath.Join(cfg.Export.Directory, base+"_Model.csv")
		if err := export.ExportModelCSV(path, report); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	if exportWorkbook {
		paths, err := export.ExportWorkbook(cfg.Export.Directory, base, report)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Printf("Wrote %s\n", p)
		}
	}
	return nil
}

// archiveDeal saves the estimate without failing the command. Store
// errors are reported and dropped.
func archiveDeal(in *types.EstimateInput, agg *types.AggregatedFinancials) {
	store, err := storage.Open(config.Get().Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: deal store unavailable: %v\n", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	deal, err := store.Save(ctx, in, agg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to archive deal: %v\n", err)
		return
	}
	fmt.Printf("Archived deal %s\n", deal.ID)
}

func printEstimate(r *export.Report) {
	agg := r.Financials
	sym := r.Table.CurrencySymbol

	fmt.Println("┌─────────────────────────────────────────────────────────────────────────┐")
	fmt.Println("│                        COST ESTIMATION SUMMARY                          │")
	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")

	for _, b := range agg.Vendors {
		fmt.Printf("│ %-50s %20s │\n",
			b.Vendor.DisplayName(),
			fmt.Sprintf("%s%.2f/month", sym, b.Total().InexactFloat64()))
		if showItems {
			for _, item := range b.Items {
				if item.IsTotal {
					continue
				}
				fmt.Printf("│   └─ %-46s %20s │\n",
					truncate(item.Label, 46),
					fmt.Sprintf("%s%.2f", sym, item.Amount.InexactFloat64()))
			}
		}
	}

	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Printf("│ %-50s %20s │\n", "TOTAL MONTHLY RUN-RATE",
		fmt.Sprintf("%s%.2f", sym, agg.TotalMonthly.InexactFloat64()))
	fmt.Printf("│ %-50s %20s │\n", "ANNUAL PLATFORM FEES",
		fmt.Sprintf("%s%.2f", sym, agg.AnnualPlatform.InexactFloat64()))
	fmt.Printf("│ %-50s %20s │\n", "ONE-TIME FEES",
		fmt.Sprintf("%s%.2f", sym, agg.OneTime.InexactFloat64()))
	fmt.Printf("│ %-50s %20s │\n", "IMPLEMENTATION COST",
		fmt.Sprintf("%s%.2f", sym, agg.ImplementationCost.InexactFloat64()))
	fmt.Println("├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Printf("│ %-50s %20s │\n", "YEAR 1 TCO",
		fmt.Sprintf("%s%.2f", sym, agg.TCO.Year1.InexactFloat64()))
	fmt.Printf("│ %-50s %20s │\n", "YEAR 2 TCO",
		fmt.Sprintf("%s%.2f", sym, agg.TCO.Year2.InexactFloat64()))
	fmt.Printf("│ %-50s %20s │\n", "YEAR 3 TCO",
		fmt.Sprintf("%s%.2f", sym, agg.TCO.Year3.InexactFloat64()))
	fmt.Println("└─────────────────────────────────────────────────────────────────────────┘")

	if len(r.Input.Plan) > 0 {
		grid := plan.PhaseGrid(r.Input.Plan)
		fmt.Printf("\nGo-live month: M%d\n", plan.GoLiveMonth(grid))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
