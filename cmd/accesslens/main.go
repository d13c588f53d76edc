// AccessLens - Insider Access Anomaly Feature Derivation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/accesslens

// AccessLens derives anomaly features from insider access event logs.
//
// Usage:
//
//	accesslens import -file events.jsonl [-format jsonl|csv]
//	accesslens run [-output features.jsonl] [-format jsonl|csv]
//	accesslens serve
//
// Configuration is loaded from defaults, an optional config.yaml and
// environment variables (DUCKDB_PATH, HTTP_PORT, LOG_LEVEL, ...).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/tomtom215/accesslens/internal/api"
	"github.com/tomtom215/accesslens/internal/config"
	"github.com/tomtom215/accesslens/internal/detection"
	"github.com/tomtom215/accesslens/internal/export"
	"github.com/tomtom215/accesslens/internal/logging"
	"github.com/tomtom215/accesslens/internal/models"
	"github.com/tomtom215/accesslens/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	var cmdErr error
	switch os.Args[1] {
	case "import":
		cmdErr = runImport(cfg, os.Args[2:])
	case "run":
		cmdErr = runDerive(cfg, os.Args[2:])
	case "serve":
		cmdErr = runServe(cfg)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if cmdErr != nil {
		logging.Fatal().Err(cmdErr).Str("command", os.Args[1]).Msg("Command failed")
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `AccessLens - insider access anomaly feature derivation

Commands:
  import   Load access events from a JSONL or CSV file into the store
  run      Derive feature records from every stored event
  serve    Start the HTTP API server

Run "accesslens <command> -h" for command flags.
`)
}

// runImport loads events from a file into the store.
func runImport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "path to the event file (required)")
	format := fs.String("format", "", "file format: jsonl or csv (default: inferred from extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("import: -file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer f.Close()

	var events []models.AccessEvent
	switch resolveFormat(*format, *file) {
	case "csv":
		events, err = store.ReadCSV(f)
	case "jsonl":
		events, err = store.ReadJSONL(f)
	default:
		return fmt.Errorf("import: cannot determine format for %s, pass -format", *file)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if len(events) == 0 {
		return errors.New("import: file contains no events")
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := st.InsertEvents(ctx, events); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	logging.Info().
		Int("events", len(events)).
		Str("file", *file).
		Str("db_path", cfg.Store.Path).
		Msg("Events imported")
	return nil
}

// runDerive executes one feature derivation run and writes the records.
func runDerive(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	output := fs.String("output", "", "output file (default: stdout)")
	format := fs.String("format", "", "output format: jsonl or csv (default: inferred from extension, else jsonl)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := logging.ContextWithNewRunID(context.Background())

	events, err := st.ListEvents(ctx)
	if err != nil {
		return err
	}

	engine := detection.NewEngine(cfg.Engine)
	records, err := engine.Run(ctx, events)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	outFormat := resolveFormat(*format, *output)
	if outFormat == "" {
		outFormat = "jsonl"
	}
	switch outFormat {
	case "csv":
		err = export.WriteCSV(out, records)
	case "jsonl":
		err = export.WriteJSONL(out, records)
	default:
		return fmt.Errorf("run: unsupported format %q", outFormat)
	}
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Int("events", len(events)).
		Int("records", len(records)).
		Str("format", outFormat).
		Msg("Feature derivation complete")
	return nil
}

// runServe starts the HTTP API server with graceful shutdown.
func runServe(cfg *config.Config) error {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	engine := detection.NewEngine(cfg.Engine)
	router := api.NewRouter(api.NewHandler(st, engine))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}

// resolveFormat picks the explicit format if given, otherwise infers it
// from the file extension. Returns empty string when neither applies.
func resolveFormat(explicit, path string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".jsonl", ".ndjson", ".json":
		return "jsonl"
	}
	return ""
}
