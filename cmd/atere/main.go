package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/MKhiriev/atere/internal/config"
	"github.com/MKhiriev/atere/internal/logger"
	"github.com/MKhiriev/atere/internal/persistence"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	flags, err := config.ParseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	log := logger.NewLogger("atere")
	log.Logger = log.With().Str("run_id", uuid.NewString()).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := append(flags.Options(), config.WithConnector(persistence.NewFirestoreConnector(log)))
	manager := config.NewManager(log, opts...)
	cfg := manager.Load(ctx)

	if !log.SetLevel(cfg.LogLevel) {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping debug")
	}

	log.Debug().Any("config", cfg.Firebase).Msg("received configs")
	cfg.WriteSummary(os.Stdout)

	if _, ok := manager.Backend(); !ok {
		log.Info().Msg("running without persistence")
	}

	if err := manager.Close(); err != nil {
		log.Error().Err(err).Msg("error closing persistence backend")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
