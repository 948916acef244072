package worker

import (
	"context"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/log"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() *amqp.TransactionRecordedMessage {
	return amqp.NewTransactionRecordedMessage(core.Transaction{
		Date:        core.NewDate(2024, 6, 1),
		Amount:      decimal.RequireFromString("12.30"),
		Category:    core.Income,
		Description: "refund",
	})
}

func TestMirrorWorker_Appends(t *testing.T) {
	target := memory.NewWith()
	w := NewMirrorWorker(target, log.Discard())

	require.NoError(t, w.HandleTransactionRecorded(context.Background(), sampleMessage()))

	rows, err := target.Query(context.Background(), core.NewDate(2024, 6, 1), core.NewDate(2024, 6, 1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "refund", rows[0].Description)
	assert.True(t, decimal.RequireFromString("12.3").Equal(rows[0].Amount))
}

func TestMirrorWorker_SkipsRedelivery(t *testing.T) {
	target := memory.NewWith()
	w := NewMirrorWorker(target, log.Discard())
	msg := sampleMessage()

	require.NoError(t, w.HandleTransactionRecorded(context.Background(), msg))
	require.NoError(t, w.HandleTransactionRecorded(context.Background(), msg))

	assert.Equal(t, 1, target.Len())
}

func TestMirrorWorker_RejectsInvalidPayload(t *testing.T) {
	target := memory.NewWith()
	w := NewMirrorWorker(target, log.Discard())
	msg := sampleMessage()
	msg.Amount = "-4"

	err := w.HandleTransactionRecorded(context.Background(), msg)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	assert.Equal(t, 0, target.Len())
}

func TestMirrorWorker_AppendFailureIsRetryable(t *testing.T) {
	target := memory.New()
	w := NewMirrorWorker(target, log.Discard())
	msg := sampleMessage()

	err := w.HandleTransactionRecorded(context.Background(), msg)
	assert.ErrorIs(t, err, core.ErrStorageWrite)

	require.NoError(t, target.Initialize(context.Background()))
	require.NoError(t, w.HandleTransactionRecorded(context.Background(), msg))
	assert.Equal(t, 1, target.Len())
}
