// Package cmd - rates commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quote-engine/adapters/rates"
	"quote-engine/internal/config"
)

// ratesCmd groups rate table commands
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect and validate rate tables",
}

// ratesValidateCmd parses a rate directory and reports what it found
var ratesValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate a directory of rate files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.Get().Rates.Directory
		if len(args) > 0 {
			dir = args[0]
		}

		entries, err := rates.NewLoader(dir).ActiveRates()
		if err != nil {
			return err
		}

		active := 0
		for _, entry := range entries {
			if entry.Active {
				active++
			}
		}
		fmt.Printf("OK: %d rate entries (%d active) in %s\n", len(entries), active, dir)
		return nil
	},
}

// ratesListCmd prints every entry in a rate directory
var ratesListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List rate entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.Get().Rates.Directory
		if len(args) > 0 {
			dir = args[0]
		}

		entries, err := rates.NewLoader(dir).ActiveRates()
		if err != nil {
			return err
		}

		for _, entry := range entries {
			status := "active"
			if !entry.Active {
				status = "inactive"
			}
			fmt.Printf("%-24s %-8s %-10s rate=%s min=%s tax=%s %s\n",
				entry.Product, entry.State, entry.Classification,
				entry.BaseRate.StringFixed(4),
				entry.MinimumPremium.StringFixed(2),
				entry.TaxRate.StringFixed(4),
				status)
		}
		return nil
	},
}

func init() {
	ratesCmd.AddCommand(ratesValidateCmd)
	ratesCmd.AddCommand(ratesListCmd)
}
