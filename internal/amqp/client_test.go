package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{-1, 1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection error", errors.New("dial tcp: connection refused"), true},
		{"closed connection error", errors.New("connection closed"), true},
		{"EOF error", errors.New("unexpected EOF"), true},
		{"broken pipe error", errors.New("broken pipe"), true},
		{"access refused", errors.New("Exception (403) Reason: \"ACCESS_REFUSED\""), false},
		{"other error", errors.New("some other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isConnectionError(tt.err)
			if result != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestDialWithRetry(t *testing.T) {
	origDial, origSleep := dialFunc, sleep
	t.Cleanup(func() { dialFunc, sleep = origDial, origSleep })

	var waits []time.Duration
	sleep = func(d time.Duration) { waits = append(waits, d) }

	t.Run("retries connection errors", func(t *testing.T) {
		waits = nil
		calls := 0
		dialFunc = func(string) (*amqp091.Connection, error) {
			calls++
			return nil, errors.New("connection refused")
		}
		if _, err := NewClient("amqp://localhost:5672/", "x", "q", nil); err == nil {
			t.Fatal("expected error")
		}
		if calls != maxDialAttempts {
			t.Errorf("dial calls = %d, want %d", calls, maxDialAttempts)
		}
		if len(waits) != maxDialAttempts-1 || waits[0] != time.Second || waits[1] != 2*time.Second {
			t.Errorf("unexpected backoff sequence %v", waits)
		}
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		waits = nil
		calls := 0
		dialFunc = func(string) (*amqp091.Connection, error) {
			calls++
			return nil, errors.New("ACCESS_REFUSED")
		}
		if _, err := NewClient("amqp://localhost:5672/", "x", "q", nil); err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 || len(waits) != 0 {
			t.Errorf("calls = %d waits = %v, want a single attempt", calls, waits)
		}
	})
}

func TestTransactionRecordedMessage(t *testing.T) {
	tx := core.Transaction{
		Date:        core.NewDate(2024, 1, 15),
		Amount:      decimal.RequireFromString("20.05"),
		Category:    core.Expense,
		Description: "food",
	}

	msg := NewTransactionRecordedMessage(tx)
	if _, err := uuid.Parse(msg.ID); err != nil {
		t.Errorf("message ID %q is not a UUID: %v", msg.ID, err)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	parsed, err := TransactionRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("TransactionRecordedMessageFromJSON() error = %v", err)
	}
	got, err := parsed.Transaction()
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
	if got.Date.String() != "15-01-2024" || !got.Amount.Equal(tx.Amount) || got.Category != core.Expense {
		t.Errorf("unexpected transaction %+v", got)
	}
}

func TestTransactionRecordedMessage_InvalidJSON(t *testing.T) {
	if _, err := TransactionRecordedMessageFromJSON([]byte(`{"id": 1}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
