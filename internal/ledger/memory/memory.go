package memory

import (
	"context"
	"errors"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

var _ ledger.Ledger = (*Store)(nil)

var errNotInitialized = errors.New("memory ledger not initialized")

// Store keeps the ledger in process memory. It follows the same
// Absent/Present lifecycle as the file-backed stores.
type Store struct {
	mu          sync.Mutex
	initialized bool
	items       []core.Transaction
}

func New() *Store {
	return &Store{}
}

// NewWith returns an initialized store holding items.
func NewWith(items ...core.Transaction) *Store {
	return &Store{initialized: true, items: append([]core.Transaction(nil), items...)}
}

func (s *Store) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	return nil
}

// Append stores the transaction at the end of the ledger.
func (s *Store) Append(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return core.StorageError(core.KindStorageWrite, core.OpAppend, "memory", errNotInitialized)
	}
	s.items = append(s.items, t)
	return nil
}

// Query returns the stored transactions dated within [start, end].
func (s *Store) Query(_ context.Context, start, end core.Date) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, core.StorageError(core.KindStorageRead, core.OpQuery, "memory", errNotInitialized)
	}
	return core.Filter(s.items, start, end), nil
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
