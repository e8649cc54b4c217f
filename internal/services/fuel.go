package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/repositories"
	"fleetlog/internal/sheets"
	"fleetlog/internal/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type FuelService struct {
	DB        intdb.Conn
	RequestID string
}

func (s FuelService) repo(db intdb.DBTX) repositories.FuelRepository {
	return repositories.FuelRepository{DB: db}
}

func normalizeFuel(rec *models.FuelRecord) error {
	rec.LicensePlate = utils.NormalizePlate(rec.LicensePlate)
	rec.FuelType = utils.NormalizeSpace(rec.FuelType)
	rec.Notes = strings.TrimSpace(rec.Notes)
	if rec.Date == "" {
		rec.Date = utils.Today()
	}
	if rec.LicensePlate == "" {
		return domain.ValidationError{Field: "license_plate", Msg: "license plate is required"}
	}
	return nil
}

// Save creates rec when it has no id and updates it otherwise. The cost is
// always re-derived from price and liters.
func (s FuelService) Save(ctx context.Context, rec *models.FuelRecord) error {
	if err := normalizeFuel(rec); err != nil {
		return err
	}
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if rec.ID > 0 {
			return s.repo(tx).Update(ctx, rec)
		}
		return s.repo(tx).Create(ctx, rec)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "fuel", "save", "fuel record saved",
		zap.Int64("id", rec.ID), zap.Int64("cost_pumped", rec.CostPumped))
	return nil
}

func (s FuelService) Delete(ctx context.Context, id int64) error {
	return intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		return s.repo(tx).Delete(ctx, id)
	})
}

type FuelPlateTotal struct {
	Plate   string  `json:"plate"`
	Records int     `json:"records"`
	Liters  float64 `json:"liters"`
	Cost    int64   `json:"cost"`
}

type FuelReport struct {
	Filter       models.FuelFilter   `json:"filter"`
	Records      []models.FuelRecord `json:"records"`
	ByPlate      []FuelPlateTotal    `json:"by_plate"`
	TotalRecords int                 `json:"total_records"`
	TotalLiters  float64             `json:"total_liters"`
	TotalCost    int64               `json:"total_cost"`
}

// SummarizeFuel totals records per plate, plates in ascending order.
func SummarizeFuel(records []models.FuelRecord) ([]FuelPlateTotal, FuelPlateTotal) {
	byPlate := map[string]*FuelPlateTotal{}
	var grand FuelPlateTotal
	for _, r := range records {
		p, ok := byPlate[r.LicensePlate]
		if !ok {
			p = &FuelPlateTotal{Plate: r.LicensePlate}
			byPlate[r.LicensePlate] = p
		}
		p.Records++
		p.Liters += r.LitersPumped
		p.Cost += r.CostPumped
		grand.Records++
		grand.Liters += r.LitersPumped
		grand.Cost += r.CostPumped
	}
	out := make([]FuelPlateTotal, 0, len(byPlate))
	for _, p := range byPlate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, grand
}

func (s FuelService) Report(ctx context.Context, f models.FuelFilter) (FuelReport, error) {
	records, err := s.repo(s.DB).List(ctx, f)
	if err != nil {
		return FuelReport{}, fmt.Errorf("fuel report: %w", err)
	}
	byPlate, grand := SummarizeFuel(records)
	return FuelReport{
		Filter:       f,
		Records:      records,
		ByPlate:      byPlate,
		TotalRecords: grand.Records,
		TotalLiters:  grand.Liters,
		TotalCost:    grand.Cost,
	}, nil
}

// Import problem codes.
const (
	CodeRequired      = "required"
	CodeInvalidDate   = "invalid_date"
	CodeInvalidNumber = "invalid_number"
	CodeDuplicateDB   = "duplicate_in_db"
	CodeDuplicateFile = "duplicate_in_file"
	CodeMissingColumn = "missing_column"
)

// ImportProblem describes why a row, or one of its cells, was rejected.
type ImportProblem struct {
	Row        int    `json:"row"`
	Column     string `json:"column"`
	Code       string `json:"code"`
	Value      string `json:"value,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type ImportReport struct {
	Filename   string          `json:"filename"`
	TotalRows  int             `json:"total_rows"`
	Imported   int             `json:"imported"`
	Skipped    int             `json:"skipped"`
	Duplicates int             `json:"duplicates"`
	Invalid    int             `json:"invalid"`
	Problems   []ImportProblem `json:"problems"`
}

// fuelColumnAliases maps normalised header names onto canonical columns.
var fuelColumnAliases = map[string]string{
	"date":            "date",
	"fuel_date":       "date",
	"license_plate":   "license_plate",
	"plate":           "license_plate",
	"vehicle":         "license_plate",
	"fuel_type":       "fuel_type",
	"type":            "fuel_type",
	"price_per_liter": "price_per_liter",
	"price":           "price_per_liter",
	"unit_price":      "price_per_liter",
	"liters_pumped":   "liters_pumped",
	"liters":          "liters_pumped",
	"quantity":        "liters_pumped",
	"odometer":        "odometer",
	"km":              "odometer",
	"notes":           "notes",
	"note":            "notes",
}

var requiredFuelColumns = []string{"date", "license_plate", "price_per_liter", "liters_pumped"}

var importDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02-01-06",
	"2006-01-02 15:04:05",
}

// parseImportDate accepts the common spreadsheet renderings of a date,
// including an Excel serial number.
func parseImportDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(utils.LayoutDate), true
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 && serial < 2958466 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(utils.LayoutDate), true
		}
	}
	return "", false
}

func canonicalFuelRow(row sheets.Row) map[string]string {
	out := make(map[string]string, len(row.Values))
	for k, v := range row.Values {
		if c, ok := fuelColumnAliases[k]; ok {
			if _, set := out[c]; !set || out[c] == "" {
				out[c] = v
			}
		}
	}
	return out
}

// parseFuelRow validates one row. Every problem found is returned, not just
// the first.
func parseFuelRow(line int, vals map[string]string) (models.FuelRecord, []ImportProblem) {
	var (
		rec      models.FuelRecord
		problems []ImportProblem
	)
	add := func(col, code, value, msg, suggestion string) {
		problems = append(problems, ImportProblem{Row: line, Column: col, Code: code, Value: value, Message: msg, Suggestion: suggestion})
	}

	if raw := vals["date"]; strings.TrimSpace(raw) == "" {
		add("date", CodeRequired, raw, "date is required", "fill in the purchase date as YYYY-MM-DD")
	} else if d, ok := parseImportDate(raw); !ok {
		add("date", CodeInvalidDate, raw, "date is not recognised", "use YYYY-MM-DD, e.g. "+utils.Today())
	} else {
		rec.Date = d
	}

	rec.LicensePlate = utils.NormalizePlate(vals["license_plate"])
	if rec.LicensePlate == "" {
		add("license_plate", CodeRequired, vals["license_plate"], "license plate is required", "fill in the vehicle plate")
	}

	number := func(col string, required bool) float64 {
		raw := strings.TrimSpace(vals[col])
		if raw == "" {
			if required {
				add(col, CodeRequired, raw, col+" is required", "enter a positive number")
			}
			return 0
		}
		v, err := utils.ParseAmount(raw)
		if err != nil || v < 0 || (required && v == 0) {
			add(col, CodeInvalidNumber, raw, col+" must be a positive number", "remove currency symbols and units, e.g. 19020")
			return 0
		}
		return v
	}
	rec.PricePerLiter = number("price_per_liter", true)
	rec.LitersPumped = number("liters_pumped", true)
	rec.Odometer = number("odometer", false)
	rec.FuelType = utils.NormalizeSpace(vals["fuel_type"])
	rec.Notes = strings.TrimSpace(vals["notes"])
	return rec, problems
}

// Import reads a CSV or XLSX upload and stores every valid, non-duplicate
// row. Rows repeating a (date, plate) already stored or seen earlier in the
// file are skipped. Blank rows are ignored and not counted.
func (s FuelService) Import(ctx context.Context, filename string, r io.Reader) (ImportReport, error) {
	rep := ImportReport{Filename: filename, Problems: []ImportProblem{}}

	headers, rows, err := sheets.ReadFile(filename, r)
	if err != nil {
		return rep, domain.ValidationError{Field: "file", Msg: err.Error(), Err: err}
	}

	present := map[string]bool{}
	for _, h := range headers {
		if c, ok := fuelColumnAliases[h]; ok {
			present[c] = true
		}
	}
	var missing []string
	for _, c := range requiredFuelColumns {
		if !present[c] {
			missing = append(missing, c)
			rep.Problems = append(rep.Problems, ImportProblem{
				Row: 1, Column: c, Code: CodeMissingColumn,
				Message:    "column " + c + " is missing",
				Suggestion: "header row needs: " + strings.Join(requiredFuelColumns, ", "),
			})
		}
	}

	seen := map[string]int{}
	err = intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := s.repo(tx)
		for _, row := range rows {
			if row.IsEmpty() {
				continue
			}
			rep.TotalRows++

			if len(missing) > 0 {
				rep.Skipped++
				rep.Invalid++
				continue
			}

			rec, problems := parseFuelRow(row.Line, canonicalFuelRow(row))
			if len(problems) > 0 {
				rep.Problems = append(rep.Problems, problems...)
				rep.Skipped++
				rep.Invalid++
				continue
			}

			key := rec.Date + "|" + rec.LicensePlate
			if first, ok := seen[key]; ok {
				rep.Problems = append(rep.Problems, ImportProblem{
					Row: row.Line, Column: "license_plate", Code: CodeDuplicateFile, Value: rec.LicensePlate,
					Message:    fmt.Sprintf("duplicate of row %d for %s", first, rec.Date),
					Suggestion: "remove the repeated row or correct its date",
				})
				rep.Skipped++
				rep.Duplicates++
				continue
			}
			exists, err := repo.ExistsFor(ctx, rec.Date, rec.LicensePlate)
			if err != nil {
				return err
			}
			seen[key] = row.Line
			if exists {
				rep.Problems = append(rep.Problems, ImportProblem{
					Row: row.Line, Column: "license_plate", Code: CodeDuplicateDB, Value: rec.LicensePlate,
					Message:    "a fuel record for " + rec.LicensePlate + " on " + rec.Date + " already exists",
					Suggestion: "edit the existing record instead of importing it again",
				})
				rep.Skipped++
				rep.Duplicates++
				continue
			}

			if err := repo.Create(ctx, &rec); err != nil {
				return err
			}
			rep.Imported++
		}
		return nil
	})
	if err != nil {
		return ImportReport{Filename: filename, Problems: []ImportProblem{}}, fmt.Errorf("fuel import: %w", err)
	}

	utils.LogEvent(s.RequestID, "fuel", "import", "fuel import finished",
		zap.String("file", filename), zap.Int("rows", rep.TotalRows),
		zap.Int("imported", rep.Imported), zap.Int("skipped", rep.Skipped))
	return rep, nil
}
