// Package cmd - deals command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cx-cost/adapters/storage"
	"cx-cost/internal/config"
)

// dealsCmd represents the deals command
var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Manage archived deal estimates",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var dealsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived deals, newest first",
	RunE:  runDealsList,
}

var dealsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one archived deal as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealsShow,
}

func init() {
	dealsCmd.AddCommand(dealsListCmd)
	dealsCmd.AddCommand(dealsShowCmd)
}

func openStore() (*storage.DealStore, error) {
	return storage.Open(config.Get().Store.Path)
}

func runDealsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	deals, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(deals) == 0 {
		fmt.Println("No archived deals.")
		return nil
	}

	fmt.Printf("%-36s  %-24s  %-6s  %14s  %14s  %s\n",
		"ID", "Client", "Region", "Monthly", "Year 1 TCO", "Saved")
	for _, d := range deals {
		fmt.Printf("%-36s  %-24s  %-6s  %14s  %14s  %s\n",
			d.ID, truncate(d.ClientName, 24), d.Region,
			d.TotalMonthly.Round(0).String(),
			d.Year1TCO.Round(0).String(),
			d.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDealsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	deal, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(deal)
}
