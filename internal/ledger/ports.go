// Package ledger defines the storage ports of the transaction ledger.
//
// Every implementation follows the same two-state lifecycle: storage is
// Absent until Initialize succeeds and Present afterwards. Append and Query
// never create storage; on Absent they fail with a storage-kind core.Error.
package ledger

import (
	"context"

	"fintrack/internal/core"
)

// Ports for ledger backends.
type (
	Initializer interface {
		// Initialize makes storage Present with the standard header. Idempotent.
		Initialize(ctx context.Context) error
	}

	Appender interface {
		// Append writes exactly one row. The transaction is assumed valid.
		Append(ctx context.Context, t core.Transaction) error
	}

	Querier interface {
		// Query returns every row dated within [start, end] in insertion order.
		Query(ctx context.Context, start, end core.Date) ([]core.Transaction, error)
	}

	Ledger interface {
		Initializer
		Appender
		Querier
	}
)
