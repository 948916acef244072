package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Category = "Income"
	Expense Category = "Expense"
)

// DateLayout is the textual form of a Date, both on input and in storage.
const DateLayout = "02-01-2006"

// parseLayout accepts one or two digit day and month; formatting always pads.
const parseLayout = "2-1-2006"

type (
	Category string

	Date struct {
		time.Time
	}

	Transaction struct {
		Date        Date
		Amount      decimal.Decimal
		Category    Category
		Description string
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// String formats the date as dd-mm-yyyy.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Between reports whether start <= d <= end.
func (d Date) Between(start, end Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is one of the two canonical categories.
func (c Category) IsValid() bool {
	return c == Income || c == Expense
}

// Validate checks every field constraint of a transaction.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return newError(KindInvalidDate, OpValidate, "", nil)
	}
	if !t.Amount.IsPositive() {
		return newError(KindInvalidAmount, OpValidate, t.Amount.String(), nil)
	}
	if !t.Category.IsValid() {
		return newError(KindInvalidCategory, OpValidate, string(t.Category), nil)
	}
	if strings.TrimSpace(t.Description) == "" {
		return newError(KindEmptyDescription, OpValidate, t.Description, nil)
	}
	return nil
}

// Record returns the storage columns of t in header order.
func (t Transaction) Record() []string {
	return []string{t.Date.String(), t.Amount.String(), t.Category.String(), t.Description}
}

// Filter returns the transactions dated within [start, end], keeping order.
// The result is never nil.
func Filter(rows []Transaction, start, end Date) []Transaction {
	out := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		if r.Date.Between(start, end) {
			out = append(out, r)
		}
	}
	return out
}

// Columns is the storage header shared by every ledger backend.
var Columns = []string{"date", "amount", "category", "description"}
