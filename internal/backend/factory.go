package backend

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/ledger/csvfile"
	"fintrack/internal/ledger/google"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

type publisherFunc func(url, exchange, queue string, logger *log.Logger) (services.EventPublisher, error)

func dialAMQP(url, exchange, queue string, logger *log.Logger) (services.EventPublisher, error) {
	client, err := amqp.NewClient(url, exchange, queue, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// DefaultFactory builds ledgers from backend configuration
type DefaultFactory struct {
	logger       *log.Logger
	newPublisher publisherFunc
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *DefaultFactory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger:       logger.WithComponent(log.ComponentBackend),
		newPublisher: dialAMQP,
	}
}

// CreateBackend validates config and creates the ledger it names
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case CSVBackend:
		result = &BackendResult{Ledger: csvfile.New(config.LedgerFile, f.logger)}
		f.logger.Info("Initialized CSV backend", log.FieldPath, config.LedgerFile)
	case SQLiteBackend:
		result = &BackendResult{Ledger: storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)}
		f.logger.Info("Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)
	case SheetsBackend:
		result, err = f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		result = &BackendResult{Ledger: memory.New()}
		f.logger.Info("Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.attachPublisher(result, config)
	return result, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := google.New(ctx, google.Options{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		SheetName:          config.GoogleSheetName,
		ServiceAccountFile: config.GoogleServiceAccountFile,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", config.GoogleSpreadsheetID)
	return &BackendResult{Ledger: cli}, nil
}

// attachPublisher connects the optional AMQP publisher. A broker that cannot
// be reached leaves the ledger working without events.
func (f *DefaultFactory) attachPublisher(result *BackendResult, config Config) {
	if config.AMQPURL == "" {
		return
	}
	publisher, err := f.newPublisher(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		return
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	result.Publisher = publisher
}
