package google

import (
	"fmt"
	"slices"
	"strings"

	"fintrack/internal/core"
)

// parseRows converts a values matrix (as returned by the Sheets API) into
// transactions. Row 1 must be the ledger header. Trailing empty cells are
// omitted by the API, so short rows are padded before parsing.
func parseRows(values [][]interface{}) ([]core.Transaction, error) {
	if len(values) == 0 {
		return nil, errHeaderMissing
	}
	if header := toStrings(values[0]); !slices.Equal(header, core.Columns) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	out := make([]core.Transaction, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		record := toStrings(values[i])
		if len(record) > len(core.Columns) {
			return nil, fmt.Errorf("row %d: too many cells", i+1)
		}
		for len(record) < len(core.Columns) {
			record = append(record, "")
		}
		t, err := core.ParseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toCells(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

