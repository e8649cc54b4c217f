package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
)

const fuelColumns = `id, fuel_date, license_plate, fuel_type, price_per_liter, liters_pumped, cost_pumped, odometer, notes, created_at`

type FuelRepository struct {
	DB intdb.DBTX
}

func scanFuel(sc rowScanner) (models.FuelRecord, error) {
	var f models.FuelRecord
	err := sc.Scan(&f.ID, &f.Date, &f.LicensePlate, &f.FuelType, &f.PricePerLiter, &f.LitersPumped, &f.CostPumped, &f.Odometer, &f.Notes, &f.CreatedAt)
	return f, err
}

func (r FuelRepository) List(ctx context.Context, f models.FuelFilter) ([]models.FuelRecord, error) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Start); s != "" {
		where = append(where, "fuel_date >= ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.End); s != "" {
		where = append(where, "fuel_date <= ?")
		args = append(args, s)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Plate)); s != "" {
		where = append(where, containsClause("license_plate"))
		args = append(args, s)
	}

	query := `SELECT ` + fuelColumns + ` FROM fuel_records WHERE ` + strings.Join(where, " AND ") + ` ORDER BY fuel_date DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fuel records: query: %w", err)
	}
	defer rows.Close()

	out := []models.FuelRecord{}
	for rows.Next() {
		rec, err := scanFuel(rows)
		if err != nil {
			return nil, fmt.Errorf("list fuel records: scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fuel records: row iteration: %w", err)
	}
	return out, nil
}

func (r FuelRepository) Get(ctx context.Context, id int64) (models.FuelRecord, error) {
	rec, err := scanFuel(r.DB.QueryRowContext(ctx, `SELECT `+fuelColumns+` FROM fuel_records WHERE id = ?`, id))
	if err != nil {
		return models.FuelRecord{}, notFound(err, "fuel record", id, "get fuel record")
	}
	return rec, nil
}

// Create stores rec with its cost re-derived from price and liters.
func (r FuelRepository) Create(ctx context.Context, rec *models.FuelRecord) error {
	rec.CostPumped = domain.FuelCost(rec.PricePerLiter, rec.LitersPumped)
	rec.CreatedAt = intdb.NowStamp()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO fuel_records (fuel_date, license_plate, fuel_type, price_per_liter, liters_pumped, cost_pumped, odometer, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Date, rec.LicensePlate, rec.FuelType, rec.PricePerLiter, rec.LitersPumped, rec.CostPumped, rec.Odometer, rec.Notes, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create fuel record: insert: %w", err)
	}
	rec.ID, _ = res.LastInsertId()
	return nil
}

// Update rewrites rec, re-deriving its cost.
func (r FuelRepository) Update(ctx context.Context, rec *models.FuelRecord) error {
	rec.CostPumped = domain.FuelCost(rec.PricePerLiter, rec.LitersPumped)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE fuel_records
		SET fuel_date = ?, license_plate = ?, fuel_type = ?, price_per_liter = ?, liters_pumped = ?, cost_pumped = ?, odometer = ?, notes = ?
		WHERE id = ?
	`, rec.Date, rec.LicensePlate, rec.FuelType, rec.PricePerLiter, rec.LitersPumped, rec.CostPumped, rec.Odometer, rec.Notes, rec.ID)
	if err != nil {
		return fmt.Errorf("update fuel record: %w", err)
	}
	return expectAffected(res, "fuel record", rec.ID)
}

func (r FuelRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM fuel_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fuel record: %w", err)
	}
	return expectAffected(res, "fuel record", id)
}

// ExistsFor reports whether a record already exists for (date, plate).
func (r FuelRepository) ExistsFor(ctx context.Context, date, plate string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM fuel_records WHERE fuel_date = ? AND license_plate = ?`, date, plate).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check fuel duplicate: %w", err)
	}
	return n > 0, nil
}
