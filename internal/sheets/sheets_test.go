package sheets

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fuelTable() Table {
	return Table{
		Title: "Fuel",
		Columns: []Column{
			{Header: "Plate", Width: 14},
			{Header: "Liters", Kind: Decimal},
			{Header: "Cost", Kind: Money},
			{Header: "Note"},
		},
		Rows: [][]any{
			{"B1234XY", 50.5, int64(951000), "full tank, north depot"},
			{"B9", 10.0, int64(190200), `said "ok"`},
		},
		Totals: true,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fuelTable()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, utf8BOM), "missing BOM")

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Plate,Liters,Cost,Note", lines[0])
	assert.Equal(t, `B1234XY,50.5,951000,"full tank, north depot"`, lines[1])
	assert.Equal(t, `B9,10,190200,"said ""ok"""`, lines[2])
	assert.Equal(t, "TOTAL,60.5,1141200,", lines[3])
}

func TestWriteCSVNoTotalsWhenEmpty(t *testing.T) {
	tbl := fuelTable()
	tbl.Rows = nil

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "\xEF\xBB\xBFPlate,Liters,Cost,Note\n", buf.String())
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, fuelTable()))

	headers, rows, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"plate", "liters", "cost", "note"}, headers)
	require.Len(t, rows, 3)
	assert.Equal(t, "B1234XY", rows[0].Get("plate"))
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "TOTAL", rows[2].Get("plate"))
}

func TestReadCSVStripsBOMAndNormalisesHeaders(t *testing.T) {
	in := "\xEF\xBB\xBFDate,License Plate,Price per Liter\n2024-03-01,b 12,19020\n,,\n"
	headers, rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "license_plate", "price_per_liter"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "b 12", rows[0].Get("license_plate"))
	assert.False(t, rows[0].IsEmpty())
	assert.True(t, rows[1].IsEmpty())
	assert.Equal(t, 3, rows[1].Line)
}

func TestReadCSVKeepsSourceLinesAcrossBlankLines(t *testing.T) {
	in := "date,plate\n2024-01-01,A\n\n2024-01-02,B\n\n\n\"2024-01-03\",\"C\nD\"\n2024-01-04,E\n"
	_, rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	got := make([]int, len(rows))
	for i, r := range rows {
		got[i] = r.Line
	}
	assert.Equal(t, []int{2, 4, 7, 9}, got)
	assert.Equal(t, "B", rows[1].Get("plate"))
}

func TestReadFileRejectsUnknownExtension(t *testing.T) {
	_, _, err := ReadFile("fuel.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "Fuel_2024", sheetName("Fuel/2024"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), 31)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatXLSX, ParseFormat("XLSX"))
	assert.Equal(t, FormatCSV, ParseFormat(""))
	assert.Equal(t, FormatCSV, ParseFormat("pdf"))
	assert.Equal(t, "trips_2024-03.csv", FormatCSV.Filename("trips", "2024-03"))
}
