// Package main - Entry point for the quotecalc API server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"quotecalc/api"
	"quotecalc/internal/config"
	"quotecalc/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	cfgFile := flag.String("config", "", "Config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	// Rate table invariants are checked here, at process start: a broken
	// table halts startup instead of producing zero-cost quotes.
	table, err := cfg.BuildTable()
	if err != nil {
		logging.Fatal("rate table failed validation", zap.Error(err))
	}

	server := api.NewServer(version, table, cfg.Pricing)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", server))

	logging.Info("quotecalc server listening",
		zap.String("addr", *addr),
		zap.String("version", version))

	if err := http.ListenAndServe(*addr, mux); err != nil {
		logging.Fatal("server exited", zap.Error(err))
	}
}
