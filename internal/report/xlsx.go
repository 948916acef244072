package report

import (
	"fmt"
	"unicode/utf8"

	"fintrack/internal/core"

	"github.com/xuri/excelize/v2"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
)

// ExportXLSX writes the report rows and summary to a workbook at path.
func ExportXLSX(r core.Report, path string) error {
	if r.Empty() {
		return ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]interface{}, len(core.Columns))
	for i, h := range core.Columns {
		header[i] = h
	}
	if err := setRow(f, transactionsSheet, 1, header...); err != nil {
		return err
	}
	for idx, t := range r.Rows {
		if utf8.RuneCountInString(t.Description) > excelize.TotalCellChars {
			return fmt.Errorf("row %d: description exceeds %d characters", idx+2, excelize.TotalCellChars)
		}
		err := setRow(f, transactionsSheet, idx+2,
			t.Date.String(), t.Amount.InexactFloat64(), t.Category.String(), t.Description)
		if err != nil {
			return err
		}
	}
	for col, width := range map[string]float64{"A": 12, "B": 12, "C": 10, "D": 40} {
		if err := f.SetColWidth(transactionsSheet, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"From", r.Start.String()},
		{"To", r.End.String()},
		{"Total Income", r.Summary.Income.InexactFloat64()},
		{"Total Expense", r.Summary.Expense.InexactFloat64()},
		{"Net Savings", r.Summary.Net.InexactFloat64()},
	}
	for i, line := range summary {
		if err := setRow(f, summarySheet, i+1, line...); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// setRow writes values into consecutive columns of row, starting at A.
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
