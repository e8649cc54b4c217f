package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"

	"go.uber.org/zap"
)

type FinanceService struct {
	DB        intdb.Conn
	RequestID string
}

func (s FinanceService) repo(db intdb.DBTX) repositories.FinanceRepository {
	return repositories.FinanceRepository{DB: db}
}

func validateFinance(t *models.FinanceTransaction) error {
	t.Category = utils.NormalizeSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
	t.Notes = strings.TrimSpace(t.Notes)
	if t.Date == "" {
		t.Date = utils.Today()
	}
	if t.Kind != domain.KindIncome {
		t.Kind = domain.KindExpense
	}
	if t.Category == "" {
		t.Category = "General"
	}
	if t.VATPercent < 0 || t.VATPercent > 100 {
		return domain.ValidationError{Field: "vat_percent", Msg: "must be between 0 and 100"}
	}
	if t.DiscountPercent < 0 || t.DiscountPercent > 100 {
		return domain.ValidationError{Field: "discount_percent", Msg: "must be between 0 and 100"}
	}
	return nil
}

// Save creates or updates t; the total is re-derived either way.
func (s FinanceService) Save(ctx context.Context, t *models.FinanceTransaction) error {
	if err := validateFinance(t); err != nil {
		return err
	}
	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if t.ID > 0 {
			return s.repo(tx).Update(ctx, t)
		}
		return s.repo(tx).Create(ctx, t)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "finance", "save", "finance transaction saved",
		zap.Int64("id", t.ID), zap.String("kind", string(t.Kind)), zap.Float64("total", t.Total))
	return nil
}

func (s FinanceService) Delete(ctx context.Context, id int64) error {
	return intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		return s.repo(tx).Delete(ctx, id)
	})
}

type FinanceCategoryTotal struct {
	Category string        `json:"category"`
	Kind     domain.TxKind `json:"kind"`
	Count    int           `json:"count"`
	Total    float64       `json:"total"`
}

type FinanceReport struct {
	Filter       models.FinanceFilter        `json:"filter"`
	Transactions []models.FinanceTransaction `json:"transactions"`
	ByCategory   []FinanceCategoryTotal      `json:"by_category"`
	Income       float64                     `json:"income"`
	Expense      float64                     `json:"expense"`
	Net          float64                     `json:"net"`
}

// SummarizeFinance totals transactions by kind and by (kind, category).
func SummarizeFinance(txns []models.FinanceTransaction) FinanceReport {
	rep := FinanceReport{Transactions: txns}
	type key struct {
		kind     domain.TxKind
		category string
	}
	byCat := map[key]*FinanceCategoryTotal{}
	for _, t := range txns {
		if t.Kind == domain.KindIncome {
			rep.Income += t.Total
		} else {
			rep.Expense += t.Total
		}
		k := key{t.Kind, t.Category}
		c, ok := byCat[k]
		if !ok {
			c = &FinanceCategoryTotal{Category: t.Category, Kind: t.Kind}
			byCat[k] = c
		}
		c.Count++
		c.Total += t.Total
	}
	rep.Net = rep.Income - rep.Expense

	rep.ByCategory = make([]FinanceCategoryTotal, 0, len(byCat))
	for _, c := range byCat {
		rep.ByCategory = append(rep.ByCategory, *c)
	}
	sort.Slice(rep.ByCategory, func(i, j int) bool {
		a, b := rep.ByCategory[i], rep.ByCategory[j]
		if a.Kind != b.Kind {
			return a.Kind == domain.KindIncome
		}
		return a.Category < b.Category
	})
	return rep
}

func (s FinanceService) Report(ctx context.Context, f models.FinanceFilter) (FinanceReport, error) {
	txns, err := s.repo(s.DB).List(ctx, f)
	if err != nil {
		return FinanceReport{}, fmt.Errorf("finance report: %w", err)
	}
	rep := SummarizeFinance(txns)
	rep.Filter = f
	return rep, nil
}
