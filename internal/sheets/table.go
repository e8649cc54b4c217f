// Package sheets renders tabular reports as CSV or XLSX and reads uploaded
// spreadsheets back into header-keyed rows.
package sheets

import (
	"fmt"
	"io"
	"strings"

	"fleetlog/internal/utils"
)

// Kind controls how a column is formatted and whether it is totalled.
type Kind int

const (
	Text Kind = iota
	Int
	Decimal
	Money
)

func (k Kind) numeric() bool { return k != Text }

type Column struct {
	Header string
	Width  float64
	Kind   Kind
	// NoTotal keeps a numeric column (an id, an odometer) out of the TOTAL row.
	NoTotal bool
}

// Table is a titled grid. Row cells are string, int, int64 or float64.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]any
	Totals  bool
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat defaults to CSV for anything other than xlsx.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatXLSX)) {
		return FormatXLSX
	}
	return FormatCSV
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename builds "<base>_<suffix>.<ext>" with unsafe characters replaced.
func (f Format) Filename(base, suffix string) string {
	name := utils.SafeFilenamePart(base)
	if s := strings.TrimSpace(suffix); s != "" {
		name += "_" + utils.SafeFilenamePart(s)
	}
	return name + "." + string(f)
}

// Write renders t in format f.
func Write(w io.Writer, f Format, t Table) error {
	if f == FormatXLSX {
		return WriteXLSX(w, t)
	}
	return WriteCSV(w, t)
}

// TotalsRow sums every totalled numeric column. The first column carries the
// TOTAL label when it is text.
func (t Table) TotalsRow() []any {
	out := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		if !col.Kind.numeric() || col.NoTotal {
			out[i] = ""
			continue
		}
		var sum float64
		for _, row := range t.Rows {
			if i < len(row) {
				sum += toFloat(row[i])
			}
		}
		if col.Kind == Int {
			out[i] = int64(sum)
		} else {
			out[i] = sum
		}
	}
	if len(out) > 0 && (!t.Columns[0].Kind.numeric() || t.Columns[0].NoTotal) {
		out[0] = "TOTAL"
	}
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// cellText is the plain-text form used by CSV.
func cellText(v any, k Kind) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int:
		return fmt.Sprintf("%d", n)
	case int64:
		return fmt.Sprintf("%d", n)
	case float64:
		if k == Money || k == Int {
			return fmt.Sprintf("%.0f", n)
		}
		return utils.FormatNumber(n)
	default:
		return fmt.Sprint(n)
	}
}
