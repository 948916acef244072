package core

import "github.com/shopspring/decimal"

// Summary aggregates a set of transactions by category.
type Summary struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
	IncomeCount  int
	ExpenseCount int
}

// Report is a filtered range of transactions with its summary.
type Report struct {
	Start   Date
	End     Date
	Rows    []Transaction
	Summary Summary
}

// Summarize totals income and expense and computes net = income - expense.
func Summarize(rows []Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range rows {
		switch r.Category {
		case Income:
			s.Income = s.Income.Add(r.Amount)
			s.IncomeCount++
		case Expense:
			s.Expense = s.Expense.Add(r.Amount)
			s.ExpenseCount++
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// Empty reports whether the report holds no rows.
func (r Report) Empty() bool {
	return len(r.Rows) == 0
}
