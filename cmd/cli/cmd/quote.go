// Package cmd - quote command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quote-engine/adapters/rates"
	"quote-engine/core/engine"
	"quote-engine/core/quote"
	"quote-engine/core/rating"
	"quote-engine/core/types"
	"quote-engine/internal/config"
	"quote-engine/internal/logging"
)

var ratesDir string

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote [request.json]",
	Short: "Produce a premium quote for a submission",
	Long: `Rate a quote request from a JSON file and print the itemized premium.

Examples:
  quote-engine quote request.json
  quote-engine quote --rates ./rates request.json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&ratesDir, "rates", "r", "", "rate file directory (defaults to config)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	var req types.QuoteRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request: %w", err)
	}

	dir := ratesDir
	if dir == "" {
		dir = config.Get().Rates.Directory
	}

	logging.Info("loading rate table")
	table, err := rating.BuildTable(rates.NewLoader(dir))
	if err != nil {
		return fmt.Errorf("failed to load rate table: %w", err)
	}
	resolver, err := rating.NewResolver(table)
	if err != nil {
		return err
	}

	orchestrator, err := engine.NewOrchestrator(resolver, quote.NewStore())
	if err != nil {
		return err
	}

	record, err := orchestrator.Quote(&req)
	if err != nil {
		return err
	}

	printRecord(&record)
	return nil
}

func printRecord(record *types.QuoteRecord) {
	fmt.Printf("Quote %s  [%s]\n", record.ID, record.Status)
	fmt.Printf("  %s (%s, %s)\n", record.Request.BusinessName, record.Request.Product, record.Request.State)

	if record.Status == types.StatusDeclined {
		for _, msg := range record.Messages {
			fmt.Printf("  declined: %s\n", msg)
		}
		return
	}

	fmt.Printf("  Risk: %d (%s)\n", record.Risk.Score, record.Risk.Tier)
	for _, note := range record.Risk.Notes {
		fmt.Printf("    note: %s\n", note)
	}

	fmt.Printf("  Base premium:   %12s\n", record.Premium.BasePremium.StringFixed(2))
	for _, adj := range record.Premium.Adjustments {
		fmt.Printf("  %-15s %12s  (%s)\n", adj.Code, adj.Amount.StringFixed(2), adj.Description)
	}
	fmt.Printf("  Subtotal:       %12s\n", record.Premium.Subtotal.StringFixed(2))
	fmt.Printf("  State tax:      %12s\n", record.Premium.StateTax.StringFixed(2))
	fmt.Printf("  Policy fee:     %12s\n", record.Premium.PolicyFee.StringFixed(2))
	fmt.Printf("  Annual premium: %12s\n", record.Premium.AnnualPremium.StringFixed(2))
	fmt.Printf("  Monthly:        %12s\n", record.Premium.MonthlyPremium.StringFixed(2))

	for _, warning := range record.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
	fmt.Printf("  Expires: %s\n", record.ExpiresAt.Format("2006-01-02"))
}
