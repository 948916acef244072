// Package worker mirrors recorded transactions from the event queue into a
// secondary ledger.
package worker

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

const (
	seenCapacity = 4096
	seenTTL      = 24 * time.Hour
)

// MirrorWorker appends every TransactionRecorded event to the target ledger.
// Message IDs already applied by this process are skipped.
type MirrorWorker struct {
	target ledger.Appender
	seen   *cache.Seen[string]
	logger *log.Logger
}

func NewMirrorWorker(target ledger.Appender, logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &MirrorWorker{
		target: target,
		seen:   cache.NewSeen[string](seenCapacity, seenTTL),
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleTransactionRecorded decodes msg and appends it to the target ledger.
// An invalid payload or a failed append is returned so the message is nacked.
func (w *MirrorWorker) HandleTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	if w.seen.Contains(msg.ID) {
		w.logger.InfoContext(ctx, "Skipping already mirrored message", log.FieldMessageID, msg.ID)
		return nil
	}

	t, err := msg.Transaction()
	if err != nil {
		w.logger.LogError(ctx, "Invalid transaction in message", err, log.OpMirror,
			log.LogFields{log.FieldMessageID: msg.ID})
		return fmt.Errorf("decode message %s: %w", msg.ID, err)
	}

	if err := w.target.Append(ctx, t); err != nil {
		w.logger.LogError(ctx, "Failed to mirror transaction", err, log.OpMirror,
			log.NewFields().WithTransaction(t))
		return fmt.Errorf("mirror message %s: %w", msg.ID, err)
	}

	w.seen.Mark(msg.ID)
	w.logger.InfoContext(ctx, "Mirrored transaction",
		append(log.NewFields().WithTransaction(t).ToSlice(), log.FieldMessageID, msg.ID)...)
	return nil
}
