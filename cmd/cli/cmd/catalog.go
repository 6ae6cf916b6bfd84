// Package cmd - catalog command
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"cx-cost/core/types"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog [region]",
	Short: "Show the pricing catalog for a region",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	region := types.RegionUS
	if len(args) > 0 {
		region = types.Region(args[0])
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}
	table, ok := eng.Catalog().Region(region)
	if !ok {
		return fmt.Errorf("no pricing table for region %s", region)
	}

	fmt.Printf("Pricing catalog: region %s (%s)\n\n", table.Region, table.CurrencySymbol)
	for _, vendor := range types.AllVendors {
		rates, ok := table.Vendor(vendor)
		if !ok {
			continue
		}
		fmt.Printf("%s\n", vendor.DisplayName())

		keys := make([]string, 0, len(rates.Rates))
		for k := range rates.Rates {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-28s %s%s\n", k, table.CurrencySymbol, rates.Rates[k].String())
		}
		for name, schedule := range rates.Tiers {
			fmt.Printf("  %s (tiered):\n", name)
			for _, tier := range schedule {
				if tier.UpTo == 0 {
					fmt.Printf("    above: %s%s\n", table.CurrencySymbol, tier.Price.String())
					continue
				}
				fmt.Printf("    up to %d: %s%s\n", tier.UpTo, table.CurrencySymbol, tier.Price.String())
			}
		}
		if !rates.Fixed.PlatformAnnual.IsZero() {
			fmt.Printf("  %-28s %s%s\n", "annual platform fee", table.CurrencySymbol, rates.Fixed.PlatformAnnual.String())
		}
		if !rates.Fixed.OneTime.IsZero() {
			fmt.Printf("  %-28s %s%s\n", "one-time fee", table.CurrencySymbol, rates.Fixed.OneTime.String())
		}
		fmt.Println()
	}

	fmt.Println("Models")
	for tier, m := range table.Models {
		fmt.Printf("  %-12s in %s%s/1k  out %s%s/1k\n", tier,
			table.CurrencySymbol, m.InputPer1K.String(),
			table.CurrencySymbol, m.OutputPer1K.String())
	}
	return nil
}
