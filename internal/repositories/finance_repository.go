package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
)

const financeColumns = `id, txn_date, kind, category, description, amount, vat_percent, discount_percent, total, notes, created_at`

type FinanceRepository struct {
	DB intdb.DBTX
}

func scanFinance(sc rowScanner) (models.FinanceTransaction, error) {
	var (
		t    models.FinanceTransaction
		kind string
	)
	err := sc.Scan(&t.ID, &t.Date, &kind, &t.Category, &t.Description, &t.Amount, &t.VATPercent, &t.DiscountPercent, &t.Total, &t.Notes, &t.CreatedAt)
	t.Kind = domain.ParseTxKind(kind)
	return t, err
}

func (r FinanceRepository) List(ctx context.Context, f models.FinanceFilter) ([]models.FinanceTransaction, error) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Start); s != "" {
		where = append(where, "txn_date >= ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.End); s != "" {
		where = append(where, "txn_date <= ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Kind); s != "" {
		where = append(where, "kind = ?")
		args = append(args, string(domain.ParseTxKind(s)))
	}
	if s := strings.ToLower(strings.TrimSpace(f.Category)); s != "" {
		where = append(where, containsClause("category"))
		args = append(args, s)
	}

	query := `SELECT ` + financeColumns + ` FROM finance_transactions WHERE ` + strings.Join(where, " AND ") + ` ORDER BY txn_date DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list finance transactions: query: %w", err)
	}
	defer rows.Close()

	out := []models.FinanceTransaction{}
	for rows.Next() {
		t, err := scanFinance(rows)
		if err != nil {
			return nil, fmt.Errorf("list finance transactions: scan row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list finance transactions: row iteration: %w", err)
	}
	return out, nil
}

func (r FinanceRepository) Get(ctx context.Context, id int64) (models.FinanceTransaction, error) {
	t, err := scanFinance(r.DB.QueryRowContext(ctx, `SELECT `+financeColumns+` FROM finance_transactions WHERE id = ?`, id))
	if err != nil {
		return models.FinanceTransaction{}, notFound(err, "finance transaction", id, "get finance transaction")
	}
	return t, nil
}

// Create stores t with its total re-derived.
func (r FinanceRepository) Create(ctx context.Context, t *models.FinanceTransaction) error {
	t.Total = domain.FinanceTotal(t.Amount, t.VATPercent, t.DiscountPercent)
	t.CreatedAt = intdb.NowStamp()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO finance_transactions (txn_date, kind, category, description, amount, vat_percent, discount_percent, total, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Date, string(t.Kind), t.Category, t.Description, t.Amount, t.VATPercent, t.DiscountPercent, t.Total, t.Notes, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create finance transaction: insert: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

// Update rewrites t, re-deriving its total.
func (r FinanceRepository) Update(ctx context.Context, t *models.FinanceTransaction) error {
	t.Total = domain.FinanceTotal(t.Amount, t.VATPercent, t.DiscountPercent)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE finance_transactions
		SET txn_date = ?, kind = ?, category = ?, description = ?, amount = ?, vat_percent = ?, discount_percent = ?, total = ?, notes = ?
		WHERE id = ?
	`, t.Date, string(t.Kind), t.Category, t.Description, t.Amount, t.VATPercent, t.DiscountPercent, t.Total, t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("update finance transaction: %w", err)
	}
	return expectAffected(res, "finance transaction", t.ID)
}

func (r FinanceRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM finance_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete finance transaction: %w", err)
	}
	return expectAffected(res, "finance transaction", id)
}
