// Package cli provides process initialization and the interactive menu.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/config"
	"fintrack/internal/log"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger opens the log file named by the configuration and installs the
// logger as the slog default. The returned cleanup closes the log file.
func SetupLogger(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := log.OpenFile(cfg.LogFile, level, cfg.LogConsole)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}
	log.SetDefault(logger)

	cleanup := func() {
		_ = closer.Close()
	}
	return logger, cleanup, nil
}

// HandleInterrupt runs cleanup and exits when SIGINT or SIGTERM arrives while
// the menu is blocked on input. The returned stop function detaches the
// handler.
func HandleInterrupt(logger *log.Logger, cleanup func()) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			if cleanup != nil {
				cleanup()
			}
			os.Exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
