// Package cmd provides the CLI commands for cx-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cx-cost/core/catalog"
	"cx-cost/core/engine"
	"cx-cost/core/vendors"
	"cx-cost/internal/config"
	"cx-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cx-cost",
	Short: "Estimate contact-center technology costs",
	Long: `cx-cost is a multi-vendor contact-center cost estimation tool.

It prices a channel and capability portfolio across vendor stacks and
produces itemized monthly run-rates, vendor comparisons, implementation
plans, and multi-year TCO projections.

Examples:
  cx-cost estimate scenario.yaml
  cx-cost estimate --region IN --export-csv scenario.yaml
  cx-cost compare scenario.yaml
  cx-cost catalog US`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cx-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(dealsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// buildEngine assembles the engine from configuration, loading the HCL
// catalog override when one is configured
func buildEngine() (*engine.Engine, error) {
	cfg := config.Get()
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog overrides: %w", err)
		}
		cat = loaded
	}
	return engine.New(vendors.Default(), cat), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cx-cost version 0.1.0")
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}
