package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ParseRecords reads the remaining records of reader and applies parseFn to
// each one. Errors carry the line number of the offending record.
func ParseRecords[T any](reader *csv.Reader, parseFn func(record []string) (T, error)) ([]T, error) {
	result := make([]T, 0)

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)
		item, err := parseFn(record)
		if err != nil {
			return nil, fmt.Errorf("error parsing line %d: %w", line, err)
		}

		result = append(result, item)
	}

	return result, nil
}
