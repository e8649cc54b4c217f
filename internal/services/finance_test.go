package services

import (
	"context"
	"testing"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFinanceSaveDerivesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO finance_transactions").
		WithArgs("2024-03-01", "income", "Freight", "March haul", 1000000.0, 10.0, 5.0, 1045000.0, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	txn := models.FinanceTransaction{
		Date: "2024-03-01", Kind: domain.KindIncome, Category: " Freight ", Description: "March haul",
		Amount: 1000000, VATPercent: 10, DiscountPercent: 5, Total: 1,
	}
	if err := (FinanceService{DB: db}).Save(context.Background(), &txn); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if txn.ID != 12 || txn.Total != 1045000 {
		t.Fatalf("unexpected saved txn %+v", txn)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinanceSaveRejectsBadPercent(t *testing.T) {
	txn := models.FinanceTransaction{Amount: 1, VATPercent: 150}
	err := (FinanceService{}).Save(context.Background(), &txn)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSummarizeFinance(t *testing.T) {
	rep := SummarizeFinance([]models.FinanceTransaction{
		{Kind: domain.KindIncome, Category: "Freight", Total: 500},
		{Kind: domain.KindExpense, Category: "Repairs", Total: 120},
		{Kind: domain.KindIncome, Category: "Freight", Total: 300},
		{Kind: domain.KindExpense, Category: "Fuel", Total: 80},
	})
	if rep.Income != 800 || rep.Expense != 200 || rep.Net != 600 {
		t.Fatalf("unexpected totals %+v", rep)
	}
	if len(rep.ByCategory) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(rep.ByCategory))
	}
	first := rep.ByCategory[0]
	if first.Kind != domain.KindIncome || first.Count != 2 || first.Total != 800 {
		t.Fatalf("unexpected first category %+v", first)
	}
	if rep.ByCategory[1].Category != "Fuel" {
		t.Fatalf("expense categories should be sorted, got %+v", rep.ByCategory)
	}
}
