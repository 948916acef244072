package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var categoryCodes = map[string]Category{
	"I": Income,
	"E": Expense,
}

// ParseDate parses a dd-mm-yyyy date. When allowDefault is set, empty input
// yields today's date.
func ParseDate(text string, allowDefault bool) (Date, error) {
	return ParseDateAt(text, allowDefault, time.Now())
}

// ParseDateAt is ParseDate with an explicit clock for the default date.
func ParseDateAt(text string, allowDefault bool, now time.Time) (Date, error) {
	s := strings.TrimSpace(text)
	if s == "" && allowDefault {
		return DateOf(now), nil
	}
	t, err := time.Parse(parseLayout, s)
	if err != nil {
		return Date{}, newError(KindInvalidDate, OpParseDate, text, err)
	}
	return DateOf(t), nil
}

// Bounds on an accepted amount. Exponent notation is checked before the
// value is ever expanded to text.
const (
	maxAmountIntegerDigits  = 15
	maxAmountFractionDigits = 8
)

var errAmountOutOfRange = fmt.Errorf("amount exceeds %d integer or %d fraction digits", maxAmountIntegerDigits, maxAmountFractionDigits)

// ParseAmount parses a strictly positive decimal amount with at most 15
// integer and 8 fraction digits.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, newError(KindInvalidAmount, OpParseAmount, text, nil)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, newError(KindInvalidAmount, OpParseAmount, text, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, newError(KindInvalidAmount, OpParseAmount, text, nil)
	}
	if d.Exponent() < -maxAmountFractionDigits || d.NumDigits()+int(d.Exponent()) > maxAmountIntegerDigits {
		return decimal.Zero, newError(KindInvalidAmount, OpParseAmount, text, errAmountOutOfRange)
	}
	return d, nil
}

// ParseCategory maps the single-letter code I or E (any case) to a Category.
func ParseCategory(text string) (Category, error) {
	code := strings.ToUpper(strings.TrimSpace(text))
	if c, ok := categoryCodes[code]; ok {
		return c, nil
	}
	return "", newError(KindInvalidCategory, OpParseCategory, text, nil)
}

// ParseCategoryName accepts only the stored words Income and Expense.
func ParseCategoryName(text string) (Category, error) {
	c := Category(strings.TrimSpace(text))
	if !c.IsValid() {
		return "", newError(KindInvalidCategory, OpParseCategory, text, nil)
	}
	return c, nil
}

// ParseDescription trims the text and rejects an empty result.
func ParseDescription(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", newError(KindEmptyDescription, OpParseDescription, text, nil)
	}
	return s, nil
}

// ParseRecord decodes one stored row in Columns order.
func ParseRecord(record []string) (Transaction, error) {
	if len(record) != len(Columns) {
		return Transaction{}, fmt.Errorf("expected %d fields, got %d", len(Columns), len(record))
	}
	date, err := ParseDate(record[0], false)
	if err != nil {
		return Transaction{}, err
	}
	amount, err := ParseAmount(record[1])
	if err != nil {
		return Transaction{}, err
	}
	category, err := ParseCategoryName(record[2])
	if err != nil {
		return Transaction{}, err
	}
	desc, err := ParseDescription(record[3])
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{Date: date, Amount: amount, Category: category, Description: desc}, nil
}
