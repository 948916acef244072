package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	tx := core.Transaction{
		Date:        core.NewDate(2024, 1, 1),
		Amount:      decimal.NewFromInt(50),
		Category:    core.Income,
		Description: "salary",
	}

	if _, err := s.Query(ctx, tx.Date, tx.Date); core.KindOf(err) != core.KindStorageRead {
		t.Fatalf("expected StorageReadError before initialize, got %v", err)
	}
	if err := s.Append(ctx, tx); core.KindOf(err) != core.KindStorageWrite {
		t.Fatalf("expected StorageWriteError before initialize, got %v", err)
	}

	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := s.Append(ctx, tx); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.Query(ctx, tx.Date, tx.Date)
	if err != nil || len(got) != 1 || got[0].Description != "salary" {
		t.Fatalf("unexpected query: %v err=%v", got, err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", s.Len())
	}
}

func TestNewWithIsInitialized(t *testing.T) {
	s := NewWith(core.Transaction{Date: core.NewDate(2024, 5, 5), Amount: decimal.NewFromInt(1), Category: core.Expense, Description: "x"})
	got, err := s.Query(context.Background(), core.NewDate(2024, 5, 1), core.NewDate(2024, 5, 31))
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected query: %v err=%v", got, err)
	}
}
