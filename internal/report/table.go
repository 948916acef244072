// Package report renders ledger reports: text tables, summaries, scatter
// plots and spreadsheet exports.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fintrack/internal/core"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	incomeColor  = color.New(color.FgGreen)
	expenseColor = color.New(color.FgRed)
	headerColor  = color.New(color.Bold)
)

// WriteTable prints rows as an aligned table in insertion order.
func WriteTable(w io.Writer, rows []core.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tamount\tcategory\tdescription")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date, r.Amount.StringFixed(2), r.Category, r.Description)
	}
	return tw.Flush()
}

// WriteSummary prints totals with two decimals.
func WriteSummary(w io.Writer, s core.Summary) {
	headerColor.Fprintln(w, "\nSummary:")
	incomeColor.Fprintf(w, "Total Income: %s\n", money(s.Income))
	expenseColor.Fprintf(w, "Total Expense: %s\n", money(s.Expense))
	netColor := incomeColor
	if s.Net.IsNegative() {
		netColor = expenseColor
	}
	netColor.Fprintf(w, "Net Savings: %s\n", money(s.Net))
}

// WriteReport prints the whole range report, or a notice when it is empty.
func WriteReport(w io.Writer, r core.Report) error {
	if r.Empty() {
		fmt.Fprintln(w, "No transactions found in the given date range.")
		return nil
	}
	fmt.Fprintf(w, "Transactions from %s to %s\n", r.Start, r.End)
	if err := WriteTable(w, r.Rows); err != nil {
		return err
	}
	WriteSummary(w, r.Summary)
	return nil
}

// WriteTransaction echoes a single recorded transaction.
func WriteTransaction(w io.Writer, t core.Transaction) {
	fmt.Fprintln(w, "\n------------ Final Entry --------------")
	fmt.Fprintf(w, "Date: %s\n", t.Date)
	fmt.Fprintf(w, "Amount: %s\n", t.Amount)
	fmt.Fprintf(w, "Category: %s\n", t.Category)
	fmt.Fprintf(w, "Description: %s\n", t.Description)
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FileName builds the file name used for range artifacts.
func FileName(prefix string, start, end core.Date, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", prefix, start, end, ext)
}
