package invoice

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"invoicer/internal/money"
)

// ImportEntries reads invoice entries from tabular text: one header row,
// then rows of id, description, rate, quantity. A malformed numeric field
// anywhere fails the whole import and no entries are returned; there is
// no partial import.
func ImportEntries(r io.Reader) ([]Entry, error) {
	const op = "ImportEntries"

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: reading rows: %w", op, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: source is empty", op)
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, row := range records[1:] {
		rowNum := i + 2 // account for header and 0-based indexing

		if len(row) != 4 {
			return nil, &ImportError{
				Row:   rowNum,
				Field: "row",
				Err:   fmt.Errorf("expected 4 columns, got %d", len(row)),
			}
		}

		rate, err := money.ParseAmount(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, &ImportError{Row: rowNum, Field: "rate", Err: err}
		}

		qty, err := money.ParseAmount(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, &ImportError{Row: rowNum, Field: "quantity", Err: err}
		}

		entries = append(entries, NewEntry(row[0], row[1], rate, qty))
	}

	return entries, nil
}
