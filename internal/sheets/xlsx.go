package sheets

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Built-in excelize number formats.
const (
	numFmtInt     = 3 // #,##0
	numFmtDecimal = 4 // #,##0.00
)

// sheetName trims t.Title to something Excel accepts.
func sheetName(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if title == "" {
		return defaultSheet
	}
	if r := []rune(title); len(r) > 31 {
		title = string(r[:31])
	}
	return title
}

// WriteXLSX writes t as a single-sheet workbook with a bold filled header,
// fixed column widths, number formats on numeric columns and, when
// t.Totals is set, a TOTAL row.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	intStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtInt})
	if err != nil {
		return fmt.Errorf("int style: %w", err)
	}
	decStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDecimal})
	if err != nil {
		return fmt.Errorf("decimal style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		NumFmt: numFmtInt,
		Border: []excelize.Border{
			{Type: "top", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("total style: %w", err)
	}

	for i, col := range t.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := col.Width
		if width <= 0 {
			width = 15
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set width %s: %w", name, err)
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for r, row := range t.Rows {
		for i, col := range t.Columns {
			if i >= len(row) {
				break
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, row[i]); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
			switch col.Kind {
			case Int, Money:
				err = f.SetCellStyle(sheet, cell, cell, intStyle)
			case Decimal:
				err = f.SetCellStyle(sheet, cell, cell, decStyle)
			}
			if err != nil {
				return fmt.Errorf("style cell %s: %w", cell, err)
			}
		}
	}

	if t.Totals && len(t.Rows) > 0 && len(t.Columns) > 0 {
		rowNum := len(t.Rows) + 2
		for i, v := range t.TotalsRow() {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set total %s: %w", cell, err)
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), rowNum)
		if err := f.SetCellStyle(sheet, first, last, totalStyle); err != nil {
			return fmt.Errorf("style totals: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
