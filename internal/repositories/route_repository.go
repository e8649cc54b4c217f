package repositories

import (
	"context"
	"fmt"
	"strings"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
)

const routeColumns = `id, route_code, route_name, distance, monthly_salary, category, status, created_at`

type RouteRepository struct {
	DB intdb.DBTX
}

func scanRoute(sc rowScanner) (models.Route, error) {
	var (
		rt  models.Route
		cat string
	)
	err := sc.Scan(&rt.ID, &rt.Code, &rt.Name, &rt.Distance, &rt.MonthlySalary, &cat, &rt.Status, &rt.CreatedAt)
	rt.Category = domain.ParseRouteCategory(cat)
	return rt, err
}

// List returns active routes ordered by code.
func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE status = 1 ORDER BY route_code ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list routes: query: %w", err)
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	return out, nil
}

// Get loads a route by id, including soft-deleted ones referenced by history.
func (r RouteRepository) Get(ctx context.Context, id int64) (models.Route, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = ?`, id)
	rt, err := scanRoute(row)
	if err != nil {
		return models.Route{}, notFound(err, "route", id, "get route")
	}
	return rt, nil
}

func validateRoute(rt *models.Route) error {
	rt.Code = strings.ToUpper(strings.TrimSpace(rt.Code))
	rt.Name = strings.TrimSpace(rt.Name)
	if rt.Code == "" {
		return domain.ValidationError{Field: "route_code", Msg: "required"}
	}
	if rt.Name == "" {
		return domain.ValidationError{Field: "route_name", Msg: "required"}
	}
	if rt.Category != domain.CategoryReinforcement {
		rt.Category = domain.CategoryStandard
	}
	return nil
}

func (r RouteRepository) Create(ctx context.Context, rt *models.Route) error {
	if err := validateRoute(rt); err != nil {
		return err
	}
	rt.Status = domain.StatusActive
	rt.CreatedAt = intdb.NowStamp()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes (route_code, route_name, distance, monthly_salary, category, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rt.Code, rt.Name, rt.Distance, rt.MonthlySalary, string(rt.Category), rt.Status, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("create route: insert: %w", err)
	}
	rt.ID, _ = res.LastInsertId()
	return nil
}

// Update rewrites an active route. Salary reports read the current rate, so
// a rate change also changes historical reports.
func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	if err := validateRoute(&rt); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE routes
		SET route_code = ?, route_name = ?, distance = ?, monthly_salary = ?, category = ?
		WHERE id = ? AND status = 1
	`, rt.Code, rt.Name, rt.Distance, rt.MonthlySalary, string(rt.Category), rt.ID)
	if err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	return expectAffected(res, "route", rt.ID)
}

func (r RouteRepository) SoftDelete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE routes SET status = 0 WHERE id = ? AND status = 1`, id)
	if err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return expectAffected(res, "route", id)
}

func (r RouteRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM routes WHERE status = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count routes: %w", err)
	}
	return n, nil
}
