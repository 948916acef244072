package google

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValues emulates a single sheet tab.
type fakeValues struct {
	rows    [][]interface{}
	failGet bool
}

func (f *fakeValues) Get(_ context.Context, _, rng string) ([][]interface{}, error) {
	if f.failGet {
		return nil, errors.New("googleapi: Error 404: Requested entity was not found")
	}
	if strings.HasSuffix(rng, "A1:D1") {
		if len(f.rows) == 0 {
			return nil, nil
		}
		return f.rows[:1], nil
	}
	return f.rows, nil
}

func (f *fakeValues) Update(_ context.Context, _, _ string, values [][]interface{}) error {
	if len(f.rows) == 0 {
		f.rows = append(f.rows, values...)
		return nil
	}
	f.rows[0] = values[0]
	return nil
}

func (f *fakeValues) Append(_ context.Context, _, _ string, values [][]interface{}) error {
	f.rows = append(f.rows, values...)
	return nil
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	fake := &fakeValues{}
	c := newClient(fake, "sheet-id", "Transactions", nil)

	tx := core.Transaction{Date: core.NewDate(2024, 1, 1), Amount: decimal.NewFromInt(50), Category: core.Income, Description: "salary"}

	_, err := c.Query(ctx, tx.Date, tx.Date)
	assert.ErrorIs(t, err, core.ErrStorageRead)
	assert.ErrorIs(t, c.Append(ctx, tx), core.ErrStorageWrite)
	assert.Empty(t, fake.rows)

	require.NoError(t, c.Initialize(ctx))
	require.NoError(t, c.Initialize(ctx))
	require.Len(t, fake.rows, 1)

	require.NoError(t, c.Append(ctx, tx))
	require.NoError(t, c.Append(ctx, core.Transaction{Date: core.NewDate(2024, 1, 15), Amount: decimal.NewFromInt(20), Category: core.Expense, Description: "food"}))

	got, err := c.Query(ctx, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "30", core.Summarize(got).Net.String())
}

func TestClientInitializeErrors(t *testing.T) {
	ctx := context.Background()

	c := newClient(&fakeValues{failGet: true}, "sheet-id", "Transactions", nil)
	assert.ErrorIs(t, c.Initialize(ctx), core.ErrStorageInit)

	foreign := &fakeValues{rows: [][]interface{}{{"Month", "Day", "Description", "Amount"}}}
	c = newClient(foreign, "sheet-id", "Transactions", nil)
	assert.ErrorIs(t, c.Initialize(ctx), core.ErrStorageInit)
}

func TestLoadCredentials(t *testing.T) {
	_, err := loadCredentials(Options{})
	assert.Error(t, err)

	data, err := loadCredentials(Options{ServiceAccountJSON: `{"type":"service_account"}`})
	require.NoError(t, err)
	assert.Contains(t, string(data), "service_account")

	_, err = loadCredentials(Options{ServiceAccountFile: "/non/existent.json"})
	assert.Error(t, err)
}
