package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes t as UTF-8 CSV prefixed with a BOM so spreadsheet apps
// detect the encoding. Fields with a comma, quote or newline are quoted.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write csv bom: %w", err)
	}

	cw := csv.NewWriter(w)
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header
	}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(t.Columns))
	writeRow := func(row []any) error {
		for i, col := range t.Columns {
			record[i] = ""
			if i < len(row) {
				record[i] = cellText(row[i], col.Kind)
			}
		}
		return cw.Write(record)
	}

	for n, row := range t.Rows {
		if err := writeRow(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", n+1, err)
		}
	}
	if t.Totals && len(t.Rows) > 0 {
		if err := writeRow(t.TotalsRow()); err != nil {
			return fmt.Errorf("write csv totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
