package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger/csvfile"
	"fintrack/internal/ledger/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []core.Transaction
	err       error
	closed    bool
}

func (f *fakePublisher) PublishTransactionRecorded(_ context.Context, t core.Transaction) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, t)
	return "msg-1", nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func mustTx(t *testing.T, date, amount, code, desc string) core.Transaction {
	t.Helper()
	d, err := core.ParseDate(date, false)
	require.NoError(t, err)
	a, err := core.ParseAmount(amount)
	require.NoError(t, err)
	c, err := core.ParseCategory(code)
	require.NoError(t, err)
	s, err := core.ParseDescription(desc)
	require.NoError(t, err)
	return core.Transaction{Date: d, Amount: a, Category: c, Description: s}
}

func TestLedgerService_EndToEndCSV(t *testing.T) {
	ctx := context.Background()
	store := csvfile.New(filepath.Join(t.TempDir(), "finance_data.csv"), nil)
	svc := NewLedgerService(store, nil, nil)

	require.NoError(t, svc.Initialize(ctx))
	require.NoError(t, svc.Record(ctx, mustTx(t, "01-01-2024", "50", "I", "salary")))
	require.NoError(t, svc.Record(ctx, mustTx(t, "15-01-2024", "20", "E", "food")))

	report, err := svc.Report(ctx, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2)
	assert.Equal(t, "50", report.Summary.Income.String())
	assert.Equal(t, "20", report.Summary.Expense.String())
	assert.Equal(t, "30", report.Summary.Net.String())
}

func TestLedgerService_RecordRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewLedgerService(store, nil, nil)
	require.NoError(t, svc.Initialize(ctx))

	err := svc.Record(ctx, core.Transaction{Date: core.NewDate(2024, 1, 1), Amount: decimal.NewFromInt(-1), Category: core.Income, Description: "x"})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Equal(t, 0, store.Len())
}

func TestLedgerService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewLedgerService(memory.NewWith(), pub, nil)

	tx := mustTx(t, "01-01-2024", "50", "i", "salary")
	require.NoError(t, svc.Record(ctx, tx))
	require.Len(t, pub.published, 1)
	assert.Equal(t, "salary", pub.published[0].Description)

	require.NoError(t, svc.Close())
	assert.True(t, pub.closed)
}

func TestLedgerService_PublishFailureDoesNotFailRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWith()
	svc := NewLedgerService(store, &fakePublisher{err: errors.New("channel closed")}, nil)

	require.NoError(t, svc.Record(ctx, mustTx(t, "01-01-2024", "5", "E", "coffee")))
	assert.Equal(t, 1, store.Len())
}

func TestLedgerService_UninitializedStorage(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(csvfile.New(filepath.Join(t.TempDir(), "missing.csv"), nil), nil, nil)

	_, err := svc.Report(ctx, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	assert.ErrorIs(t, err, core.ErrStorageRead)

	err = svc.Record(ctx, mustTx(t, "01-01-2024", "5", "E", "coffee"))
	assert.ErrorIs(t, err, core.ErrStorageWrite)
}

func TestLedgerService_EmptyRange(t *testing.T) {
	svc := NewLedgerService(memory.NewWith(mustTx(t, "01-01-2024", "5", "E", "coffee")), nil, nil)

	report, err := svc.Report(context.Background(), core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31))
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.True(t, report.Summary.Net.IsZero())
}
