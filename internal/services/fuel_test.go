package services

import (
	"context"
	"strings"
	"testing"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFuelImportSkipsDuplicatesAndInvalidRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	csv := "\xEF\xBB\xBFDate,License Plate,Fuel Type,Price per Liter,Liters Pumped\n" +
		"2024-03-01,B 1234 XY,diesel,19020,50\n" +
		"2024-03-01,b1234xy,diesel,19000,10\n" +
		",,,,\n" +
		"2024-03-02,B9,diesel,abc,10\n" +
		"2024-03-02,B10,diesel,10000,5\n"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM fuel_records").
		WithArgs("2024-03-01", "B1234XY").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO fuel_records").
		WithArgs("2024-03-01", "B1234XY", "diesel", 19020.0, 50.0, int64(951000), 0.0, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM fuel_records").
		WithArgs("2024-03-02", "B10").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	svc := FuelService{DB: db}
	rep, err := svc.Import(context.Background(), "fuel.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if rep.TotalRows != 4 {
		t.Fatalf("expected 4 non-empty rows, got %d", rep.TotalRows)
	}
	if rep.Imported != 1 || rep.Skipped != 3 {
		t.Fatalf("expected 1 imported / 3 skipped, got %d / %d", rep.Imported, rep.Skipped)
	}
	if rep.Imported+rep.Skipped != rep.TotalRows {
		t.Fatalf("imported + skipped != total rows")
	}
	if rep.Duplicates != 2 || rep.Invalid != 1 {
		t.Fatalf("expected 2 duplicates and 1 invalid, got %d and %d", rep.Duplicates, rep.Invalid)
	}

	codes := map[string]int{}
	for _, p := range rep.Problems {
		codes[p.Code] = p.Row
		if p.Suggestion == "" {
			t.Fatalf("problem without suggestion: %+v", p)
		}
	}
	if codes[CodeDuplicateFile] != 3 || codes[CodeInvalidNumber] != 5 || codes[CodeDuplicateDB] != 6 {
		t.Fatalf("unexpected problem rows %v", codes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFuelImportMissingColumnSkipsEverything(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := FuelService{DB: db}
	rep, err := svc.Import(context.Background(), "fuel.csv", strings.NewReader("date,plate\n2024-03-01,B1\n"))
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if rep.Imported != 0 || rep.Skipped != 1 || rep.TotalRows != 1 {
		t.Fatalf("unexpected counts %+v", rep)
	}
	if len(rep.Problems) != 2 || rep.Problems[0].Code != CodeMissingColumn {
		t.Fatalf("expected two missing column problems, got %+v", rep.Problems)
	}
}

func TestFuelImportReportsNonFiniteNumbers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	csv := "date,license_plate,price_per_liter,liters_pumped\n" +
		"2024-03-01,B1,NaN,50\n" +
		"2024-03-02,B1,19020,Inf\n"

	rep, err := (FuelService{DB: db}).Import(context.Background(), "fuel.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if rep.Imported != 0 || rep.Invalid != 2 || rep.Skipped != 2 {
		t.Fatalf("expected both rows invalid, got %+v", rep)
	}
	for _, p := range rep.Problems {
		if p.Code != CodeInvalidNumber {
			t.Fatalf("expected invalid number problems only, got %+v", p)
		}
	}
	if rep.Problems[0].Row != 2 || rep.Problems[0].Column != "price_per_liter" {
		t.Fatalf("unexpected first problem %+v", rep.Problems[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFuelImportRejectsUnknownFile(t *testing.T) {
	svc := FuelService{}
	_, err := svc.Import(context.Background(), "fuel.docx", strings.NewReader("x"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFuelSaveRederivesCostOnEdit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE fuel_records").
		WithArgs("2024-03-01", "B1234XY", "Diesel", 19020.0, 50.0, int64(951000), 0.0, "", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := models.FuelRecord{ID: 7, Date: "2024-03-01", LicensePlate: "b 1234 xy", FuelType: "Diesel", PricePerLiter: 19020, LitersPumped: 50, CostPumped: 1}
	if err := (FuelService{DB: db}).Save(context.Background(), &rec); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if rec.CostPumped != 951000 {
		t.Fatalf("expected cost 951000, got %d", rec.CostPumped)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestParseImportDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-01": "2024-03-01",
		"2024/03/01": "2024-03-01",
		"01/03/2024": "2024-03-01",
		"03/04/2024": "2024-04-03",
		"03-04-2024": "2024-04-03",
		"03-04-24":   "2024-04-03",
		"45352":      "2024-03-01",
	}
	for in, want := range cases {
		got, ok := parseImportDate(in)
		if !ok || got != want {
			t.Fatalf("parseImportDate(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := parseImportDate("tomorrow"); ok {
		t.Fatalf("expected failure for free text")
	}
}

func TestSummarizeFuel(t *testing.T) {
	byPlate, grand := SummarizeFuel([]models.FuelRecord{
		{LicensePlate: "B2", LitersPumped: 10, CostPumped: 100},
		{LicensePlate: "B1", LitersPumped: 5, CostPumped: 50},
		{LicensePlate: "B2", LitersPumped: 1, CostPumped: 10},
	})
	if len(byPlate) != 2 || byPlate[0].Plate != "B1" || byPlate[1].Cost != 110 {
		t.Fatalf("unexpected per plate totals %+v", byPlate)
	}
	if grand.Records != 3 || grand.Liters != 16 || grand.Cost != 160 {
		t.Fatalf("unexpected grand totals %+v", grand)
	}
}
