// Package cmd - serve command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote-engine/adapters/classification"
	"quote-engine/adapters/rates"
	"quote-engine/api"
	"quote-engine/core/engine"
	"quote-engine/core/quote"
	"quote-engine/core/rating"
	"quote-engine/internal/config"
	"quote-engine/internal/logging"
	"quote-engine/internal/recorder"
	"quote-engine/internal/sweeper"
)

var serveAddr string

// serveCmd runs the HTTP quote API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quote API",
	Long: `Start the HTTP quote API.

The rate table is loaded once at startup and is read-only afterwards;
restart the server to pick up rate changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	table, err := rating.BuildTable(rates.NewLoader(cfg.Rates.Directory))
	if err != nil {
		return fmt.Errorf("failed to load rate table: %w", err)
	}
	logging.Info("rate table loaded", zap.Int("entries", table.Len()))

	resolver, err := rating.NewResolver(table)
	if err != nil {
		return err
	}

	validity := engine.DefaultValidity
	if cfg.Quoting.ValidityDays > 0 {
		validity = time.Duration(cfg.Quoting.ValidityDays) * 24 * time.Hour
	}

	store := quote.NewStore()
	orchestrator, err := engine.NewOrchestrator(resolver, store, engine.WithValidity(validity))
	if err != nil {
		return err
	}

	opts := []api.Option{}

	if cfg.Classifications.Path != "" {
		catalog, err := classification.Load(cfg.Classifications.Path)
		if err != nil {
			logging.Warn("classification catalog unavailable; boundary validation disabled", zap.Error(err))
		} else {
			opts = append(opts, api.WithCatalog(catalog))
		}
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Audit.Enabled {
		sqliteRec, err := recorder.NewSQLiteRecorder(cfg.Audit.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open audit recorder: %w", err)
		}
		defer sqliteRec.Close()
		rec = sqliteRec
	}
	opts = append(opts, api.WithRecorder(rec))

	sweep, err := sweeper.New(store, cfg.Quoting.ExpirySchedule)
	if err != nil {
		return err
	}
	sweep.Start()
	defer sweep.Stop()

	server, err := api.NewServer(orchestrator, "0.1.0", opts...)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	return server.ListenAndServe(addr)
}
