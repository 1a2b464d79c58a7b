// Package main - Standalone quote API server
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

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

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}
	cfg := config.Get()
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	if err := run(cfg, *addr); err != nil {
		logging.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, addr string) error {
	table, err := rating.BuildTable(rates.NewLoader(cfg.Rates.Directory))
	if err != nil {
		return err
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
		if catalog, err := classification.Load(cfg.Classifications.Path); err == nil {
			opts = append(opts, api.WithCatalog(catalog))
		} else {
			logging.Warn("classification catalog unavailable", zap.Error(err))
		}
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Audit.Enabled {
		sqliteRec, err := recorder.NewSQLiteRecorder(cfg.Audit.DatabasePath)
		if err != nil {
			return err
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

	server, err := api.NewServer(orchestrator, version, opts...)
	if err != nil {
		return err
	}

	if addr == "" {
		addr = cfg.Server.Addr
	}
	return server.ListenAndServe(addr)
}
