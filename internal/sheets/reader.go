package sheets

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedFile = errors.New("unsupported file type, upload .csv or .xlsx")
)

// Row is one data row keyed by normalised header. Line is the 1-based line
// in the source, header being line 1.
type Row struct {
	Line   int
	Values map[string]string
}

func (r Row) Get(key string) string { return r.Values[key] }

// IsEmpty reports whether every cell is blank.
func (r Row) IsEmpty() bool {
	for _, v := range r.Values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader lowercases a header and joins words with "_", so
// "Price per Liter" becomes "price_per_liter".
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("-", " ", ".", " ", "(", " ", ")", " ", "/", " ").Replace(h)
	return strings.Join(strings.Fields(h), "_")
}

// ReadFile picks the parser from the file extension.
func ReadFile(filename string, r io.Reader) ([]string, []Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return nil, nil, ErrUnsupportedFile
	}
}

// ReadCSV parses CSV with an optional UTF-8 BOM.
func ReadCSV(r io.Reader) ([]string, []Row, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	// csv.Reader drops blank lines, so source lines come from FieldPos.
	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return toRows(records, lines)
}

// ReadXLSX parses the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]string, []Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return toRows(records, nil)
}

// toRows keys records by the first record's headers. lines holds the source
// line of each record; when nil, record i sits on line i+1.
func toRows(records [][]string, lines []int) ([]string, []Row, error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyFile
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		if lines != nil {
			line = lines[n+1]
		}
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(rec) {
				values[h] = strings.TrimSpace(rec[i])
			} else {
				values[h] = ""
			}
		}
		rows = append(rows, Row{Line: line, Values: values})
	}
	return headers, rows, nil
}
