// Package cmd - compare command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cx-cost/core/input"
	"cx-cost/core/types"
)

var compareRegion string

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare [scenario.yaml]",
	Short: "Compare vendors head to head for a scenario",
	Long: `Price the scenario as if each vendor were exclusively responsible for
every capability it supports, side by side against the same volumes.

Examples:
  cx-cost compare scenario.yaml
  cx-cost compare --region IN scenario.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareRegion, "region", "r", "", "pricing region override (US, IN)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	in, err := input.LoadFile(args[0])
	if err != nil {
		return err
	}
	if compareRegion != "" {
		in.Region = types.Region(compareRegion)
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}
	rows, err := eng.CompareAll(in)
	if err != nil {
		return err
	}
	table, _ := eng.Catalog().Region(in.Region)
	sym := table.CurrencySymbol

	fmt.Println("┌──────────────┬───────────┬──────────┬──────────────────┬──────────────────┐")
	fmt.Println("│ Vendor       │ Supported │ Selected │     Monthly      │   Fixed (yr/1x)  │")
	fmt.Println("├──────────────┼───────────┼──────────┼──────────────────┼──────────────────┤")
	for _, row := range rows {
		fixed := fmt.Sprintf("%s%.0f / %s%.0f", sym,
			row.Breakdown.Fixed.PlatformAnnual.InexactFloat64(),
			sym, row.Breakdown.Fixed.OneTime.InexactFloat64())
		fmt.Printf("│ %-12s │ %-9s │ %-8s │ %16s │ %16s │\n",
			row.Vendor.DisplayName(),
			yesNo(row.Supported),
			yesNo(row.Selected),
			fmt.Sprintf("%s%.2f", sym, row.Breakdown.Total().InexactFloat64()),
			fixed)
	}
	fmt.Println("└──────────────┴───────────┴──────────┴──────────────────┴──────────────────┘")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
