package main

import (
	"context"
	"fmt"
	"os"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()

	// Config errors go to stderr; the file logger needs a valid config first.
	cfg := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))

	logger, closeLog, err := cli.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		closeLog()
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendConfig)
	if err != nil {
		logger.Error("Failed to create backend", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		fmt.Fprintln(os.Stderr, "Error: failed to initialize storage")
		closeLog()
		os.Exit(1)
	}

	service := services.NewLedgerService(result.Ledger, result.Publisher, logger)
	shutdown := func() {
		if err := service.Close(); err != nil {
			logger.Warn("Failed to close event publisher", log.FieldError, err)
		}
		logger.Info("Finance tracker stopped")
		closeLog()
	}

	if err := service.Initialize(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error: failed to initialize storage")
		shutdown()
		os.Exit(1)
	}
	logger.Info("Finance tracker started", log.FieldBackend, cfg.DataBackend)

	stop := cli.HandleInterrupt(logger, shutdown)

	menu := cli.NewMenu(service, os.Stdin, os.Stdout, cli.MenuOptions{
		Attempts:  cfg.PromptAttempts,
		PlotDir:   cfg.PlotDir,
		ExportDir: cfg.ExportDir,
	}, logger)

	if err := menu.Run(ctx); err != nil {
		logger.Error("Menu loop failed", log.FieldError, err)
	}
	stop()
	shutdown()
}
