package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

// EventPublisher announces recorded transactions to other systems.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, t core.Transaction) (string, error)
	Close() error
}

// LedgerService orchestrates ledger storage, summaries and event publishing
type LedgerService struct {
	ledger    ledger.Ledger
	publisher EventPublisher
	logger    *log.Logger
}

// NewLedgerService wires a ledger backend. publisher may be nil.
func NewLedgerService(l ledger.Ledger, publisher EventPublisher, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.Discard()
	}
	return &LedgerService{
		ledger:    l,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// Initialize prepares the ledger storage. Safe to call on every start.
func (s *LedgerService) Initialize(ctx context.Context) error {
	if err := s.ledger.Initialize(ctx); err != nil {
		s.logger.LogError(ctx, "Failed to initialize ledger", err, log.OpInitialize, nil)
		return err
	}
	s.logger.DebugContext(ctx, "Ledger initialized")
	return nil
}

// Record validates and appends a transaction, then publishes an event.
// A publish failure is logged but does not fail the record.
func (s *LedgerService) Record(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		s.logger.LogError(ctx, "Refusing to record invalid transaction", err, log.OpRecord,
			log.NewFields().WithTransaction(t))
		return err
	}

	if err := s.ledger.Append(ctx, t); err != nil {
		s.logger.LogError(ctx, "Failed to append transaction", err, log.OpRecord,
			log.NewFields().WithTransaction(t))
		return err
	}

	s.logger.InfoContext(ctx, "New entry added", log.NewFields().WithTransaction(t).ToSlice()...)

	if s.publisher == nil {
		return nil
	}
	id, err := s.publisher.PublishTransactionRecorded(ctx, t)
	if err != nil {
		s.logger.LogError(ctx, "Failed to publish transaction event", err, log.OpPublish,
			log.NewFields().WithTransaction(t))
		return nil
	}
	s.logger.DebugContext(ctx, "Transaction event published", log.FieldMessageID, id)
	return nil
}

// Report queries the ledger for [start, end] and summarizes the result.
func (s *LedgerService) Report(ctx context.Context, start, end core.Date) (core.Report, error) {
	rows, err := s.ledger.Query(ctx, start, end)
	if err != nil {
		s.logger.LogError(ctx, "Failed to query transactions", err, log.OpReport,
			log.NewFields().WithRange(start, end))
		return core.Report{}, err
	}
	if start.After(end.Time) {
		s.logger.WarnContext(ctx, "Start date is after end date", log.NewFields().WithRange(start, end).ToSlice()...)
	}

	report := core.Report{
		Start:   start,
		End:     end,
		Rows:    rows,
		Summary: core.Summarize(rows),
	}

	s.logger.InfoContext(ctx, "Displayed transactions and summary",
		append(log.NewFields().WithRange(start, end).ToSlice(), log.FieldRows, len(rows))...)
	return report, nil
}

// Close releases the event publisher, if any.
func (s *LedgerService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
