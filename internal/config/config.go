package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"fintrack/internal/log"
)

type Config struct {
	// Backend selection
	DataBackend string

	// CSV ledger
	LedgerFile string

	// SQLite ledger
	SQLiteDBPath string

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mirror worker target ledger
	MirrorBackend string

	// Google Sheets ledger
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Logging
	LogFile    string
	LogLevel   string
	LogConsole bool

	// Reports
	PlotDir   string
	ExportDir string

	// Interactive driver
	PromptAttempts int
}

// Backends lists the accepted DATA_BACKEND values.
var Backends = []string{"csv", "sqlite", "sheets", "memory"}

func isBackend(name string) bool {
	for _, backend := range Backends {
		if name == backend {
			return true
		}
	}
	return false
}

func Load() *Config {
	return &Config{
		DataBackend: getEnv("DATA_BACKEND", "csv"),
		LedgerFile:  getEnv("LEDGER_FILE", "finance_data.csv"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transactions"),

		MirrorBackend: getEnv("MIRROR_BACKEND", ""),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Transactions"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		LogFile:    getEnv("LOG_FILE", "finance_tracker.log"),
		LogLevel:   getEnv("LOG_LEVEL", "debug"),
		LogConsole: getEnvBool("LOG_CONSOLE", true),

		PlotDir:   getEnv("PLOT_DIR", "."),
		ExportDir: getEnv("EXPORT_DIR", "."),

		PromptAttempts: getEnvInt("PROMPT_ATTEMPTS", 3),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !isBackend(c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, Backends))
	}
	errors = append(errors, c.backendErrors(c.DataBackend)...)

	if c.MirrorBackend != "" {
		if c.MirrorBackend == c.DataBackend {
			errors = append(errors, fmt.Sprintf("mirror backend '%s' must differ from data backend", c.MirrorBackend))
		} else if !isBackend(c.MirrorBackend) || c.MirrorBackend == "memory" {
			errors = append(errors, fmt.Sprintf("invalid mirror backend '%s': must be one of csv, sqlite, sheets", c.MirrorBackend))
		} else {
			errors = append(errors, c.backendErrors(c.MirrorBackend)...)
		}
		if c.AMQPURL == "" {
			errors = append(errors, "AMQP URL is required when a mirror backend is set")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if strings.TrimSpace(c.LogFile) == "" {
		errors = append(errors, "log file cannot be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.PromptAttempts < 1 || c.PromptAttempts > 10 {
		errors = append(errors, fmt.Sprintf("invalid prompt attempts %d: must be between 1 and 10", c.PromptAttempts))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// backendErrors checks the settings the named backend needs.
func (c *Config) backendErrors(backend string) []string {
	var errors []string
	switch backend {
	case "csv":
		if strings.TrimSpace(c.LedgerFile) == "" {
			errors = append(errors, "ledger file cannot be empty when using csv backend")
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets backend")
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}
	return errors
}
