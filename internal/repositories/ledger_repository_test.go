package repositories

import (
	"context"
	"testing"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFuelCreateDerivesCost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO fuel_records").
		WithArgs("2024-03-05", "B1234XY", "Diesel", 19020.0, 50.0, int64(951000), 0.0, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	rec := models.FuelRecord{Date: "2024-03-05", LicensePlate: "B1234XY", FuelType: "Diesel", PricePerLiter: 19020, LitersPumped: 50, CostPumped: 1}
	if err := (FuelRepository{DB: db}).Create(context.Background(), &rec); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.CostPumped != 951000 || rec.ID != 11 {
		t.Fatalf("unexpected record after create %+v", rec)
	}
}

func TestFuelUpdateDerivesCost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE fuel_records").
		WithArgs("2024-03-05", "B1234XY", "", 10000.5, 3.0, int64(30002), 0.0, "", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := models.FuelRecord{ID: 11, Date: "2024-03-05", LicensePlate: "B1234XY", PricePerLiter: 10000.5, LitersPumped: 3, CostPumped: 999}
	if err := (FuelRepository{DB: db}).Update(context.Background(), &rec); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.CostPumped != 30002 {
		t.Fatalf("expected 30002, got %d", rec.CostPumped)
	}
}

func TestFuelExistsFor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM fuel_records WHERE fuel_date = \\? AND license_plate = \\?").
		WithArgs("2024-03-05", "B1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	ok, err := FuelRepository{DB: db}.ExistsFor(context.Background(), "2024-03-05", "B1")
	if err != nil || !ok {
		t.Fatalf("expected existing record, got %v (%v)", ok, err)
	}
}

func TestFinanceCreateDerivesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO finance_transactions").
		WithArgs("2024-03-05", "expense", "Tyres", "", 1000000.0, 11.0, 10.0, 999000.0, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	txn := models.FinanceTransaction{
		Date: "2024-03-05", Kind: domain.KindExpense, Category: "Tyres",
		Amount: 1000000, VATPercent: 11, DiscountPercent: 10,
	}
	if err := (FinanceRepository{DB: db}).Create(context.Background(), &txn); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if txn.Total != 999000 {
		t.Fatalf("expected 999000, got %v", txn.Total)
	}
}

func TestFinanceListFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("txn_date >= \\? AND kind = \\? AND INSTR\\(LOWER\\(category\\), \\?\\) > 0 ORDER BY txn_date DESC").
		WithArgs("2024-03-01", "income", "freight").
		WillReturnRows(sqlmock.NewRows([]string{"id", "txn_date", "kind", "category", "description", "amount", "vat_percent", "discount_percent", "total", "notes", "created_at"}).
			AddRow(1, "2024-03-02", "income", "Freight", "", 500000.0, 0.0, 0.0, 500000.0, "", "2024-03-02 10:00:00"))

	list, err := FinanceRepository{DB: db}.List(context.Background(), models.FinanceFilter{
		DateRange: domain.DateRange{Start: "2024-03-01"},
		Kind:      "INCOME",
		Category:  "Freight",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 || list[0].Kind != domain.KindIncome {
		t.Fatalf("unexpected transactions %+v", list)
	}
}
