package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"01-01-2024", "01-01-2024", true},
		{" 15-01-2024 ", "15-01-2024", true},
		{"1-1-2024", "01-01-2024", true},
		{"29-02-2024", "29-02-2024", true},
		{"31-12-1999", "31-12-1999", true},
		{"29-02-2023", "", false},
		{"31-04-2024", "", false},
		{"2024-01-01", "", false},
		{"01/01/2024", "", false},
		{"01-01-24", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in, false)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidDate, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got.String())
	}
}

func TestParseDateRoundTripsEveryDayOfYear(t *testing.T) {
	d := NewDate(2024, 1, 1)
	for i := 0; i < 366; i++ {
		s := d.String()
		got, err := ParseDate(s, false)
		require.NoError(t, err)
		require.Equal(t, s, got.String())
		require.True(t, got.Equal(d.Time))
		d = d.AddDays(1)
	}
}

func TestParseDateDefault(t *testing.T) {
	now := time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)

	got, err := ParseDateAt("", true, now)
	require.NoError(t, err)
	assert.Equal(t, "09-03-2024", got.String())

	got, err = ParseDateAt("   ", true, now)
	require.NoError(t, err)
	assert.Equal(t, "09-03-2024", got.String())

	_, err = ParseDateAt("", false, now)
	assert.ErrorIs(t, err, ErrInvalidDate)

	got, err = ParseDate("", true)
	require.NoError(t, err)
	assert.Equal(t, Today().String(), got.String())
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("12.5")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("12.5")))

	got, err = ParseAmount(" 50 ")
	require.NoError(t, err)
	assert.Equal(t, "50", got.String())

	got, err = ParseAmount("1.5e3")
	require.NoError(t, err)
	assert.Equal(t, "1500", got.String())

	got, err = ParseAmount("999999999999999.12345678")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("999999999999999.12345678")))

	for _, in := range []string{
		"0", "-5", "abc", "", "0.00", "1.2.3", "NaN",
		"1e10000000", "1e999999999", "1e-999999999",
		"1000000000000000", "0.000000001",
	} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
		assert.Equal(t, KindInvalidAmount, KindOf(err))
	}
}

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"i", "I", " i "} {
		c, err := ParseCategory(in)
		require.NoError(t, err)
		assert.Equal(t, Income, c)
	}
	c, err := ParseCategory("e")
	require.NoError(t, err)
	assert.Equal(t, Expense, c)

	for _, in := range []string{"x", "", "Income", "IE"} {
		_, err := ParseCategory(in)
		assert.ErrorIs(t, err, ErrInvalidCategory, "input %q", in)
	}
}

func TestParseCategoryNameIsCaseConsistent(t *testing.T) {
	c, err := ParseCategoryName("Expense")
	require.NoError(t, err)
	assert.Equal(t, Expense, c)

	_, err = ParseCategoryName("expense")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseDescription(t *testing.T) {
	_, err := ParseDescription("  ")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	got, err := ParseDescription(" groceries ")
	require.NoError(t, err)
	assert.Equal(t, "groceries", got)
}

func TestParseRecord(t *testing.T) {
	tx, err := ParseRecord([]string{"15-01-2024", "20", "Expense", "food, drinks"})
	require.NoError(t, err)
	assert.Equal(t, Expense, tx.Category)
	assert.Equal(t, "food, drinks", tx.Description)
	assert.Equal(t, []string{"15-01-2024", "20", "Expense", "food, drinks"}, tx.Record())

	_, err = ParseRecord([]string{"2024-01-15", "20", "Expense", "food"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseRecord([]string{"15-01-2024", "20", "Expense"})
	assert.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	_, err := ParseAmount("abc")
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, OpParseAmount, e.Op)
	assert.Equal(t, "abc", e.Input)
	assert.True(t, e.Kind.IsValidation())
	assert.False(t, e.Kind.IsStorage())
	assert.False(t, errors.Is(err, ErrInvalidDate))

	wrapped := StorageError(KindStorageRead, OpQuery, "ledger.csv", errors.New("boom"))
	assert.ErrorIs(t, wrapped, ErrStorageRead)
	assert.Equal(t, "StorageReadError", KindOf(wrapped).String())
	assert.Contains(t, wrapped.Error(), "boom")
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2024, 1, 1),
		Amount:      decimal.NewFromInt(50),
		Category:    Income,
		Description: "salary",
	}
	require.NoError(t, good.Validate())

	bad := []struct {
		tx   Transaction
		kind Kind
	}{
		{Transaction{Amount: decimal.NewFromInt(1), Category: Income, Description: "a"}, KindInvalidDate},
		{Transaction{Date: NewDate(2024, 1, 1), Amount: decimal.Zero, Category: Income, Description: "a"}, KindInvalidAmount},
		{Transaction{Date: NewDate(2024, 1, 1), Amount: decimal.NewFromInt(1), Category: "expense", Description: "a"}, KindInvalidCategory},
		{Transaction{Date: NewDate(2024, 1, 1), Amount: decimal.NewFromInt(1), Category: Expense, Description: " "}, KindEmptyDescription},
	}
	for i, tc := range bad {
		assert.Equal(t, tc.kind, KindOf(tc.tx.Validate()), "case %d", i)
	}
}
