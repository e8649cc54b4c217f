package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/utils"
)

// Routes are LEFT JOINed without a status filter so trips keep resolving a
// soft-deleted route.
const tripSelect = `
	SELECT t.id, t.route_id, t.trip_date, t.distance_km, t.cargo_weight,
	       t.driver_name, t.license_plate, t.notes, t.created_at,
	       COALESCE(r.route_code, ''), COALESCE(r.route_name, ''),
	       COALESCE(r.distance, 0), COALESCE(r.monthly_salary, 0),
	       COALESCE(r.category, 'standard')
	FROM daily_trips t
	LEFT JOIN routes r ON r.id = t.route_id`

type TripRepository struct {
	DB intdb.DBTX
}

func scanTrip(sc rowScanner) (models.Trip, error) {
	var (
		t   models.Trip
		cat string
	)
	err := sc.Scan(
		&t.ID, &t.RouteID, &t.Date, &t.DistanceKm, &t.CargoWeight,
		&t.DriverName, &t.LicensePlate, &t.Notes, &t.CreatedAt,
		&t.RouteCode, &t.RouteName, &t.RouteDistance, &t.MonthlySalary, &cat,
	)
	t.Category = domain.ParseRouteCategory(cat)
	return t, err
}

// containsClause is a portable case-insensitive substring match for both
// SQLite and MySQL.
func containsClause(expr string) string {
	return "INSTR(LOWER(" + expr + "), ?) > 0"
}

func buildTripWhere(f models.TripFilter) (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Start); s != "" {
		where = append(where, "t.trip_date >= ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.End); s != "" {
		where = append(where, "t.trip_date <= ?")
		args = append(args, s)
	}
	if s := strings.ToLower(utils.NormalizeSpace(f.Driver)); s != "" {
		if f.ExactDriver {
			where = append(where, "LOWER(TRIM(t.driver_name)) = ?")
		} else {
			where = append(where, containsClause("t.driver_name"))
		}
		args = append(args, s)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Plate)); s != "" {
		where = append(where, containsClause("t.license_plate"))
		args = append(args, s)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Route)); s != "" {
		where = append(where, "("+containsClause("COALESCE(r.route_code, '')")+" OR "+containsClause("COALESCE(r.route_name, '')")+")")
		args = append(args, s, s)
	}
	if f.RouteID > 0 {
		where = append(where, "t.route_id = ?")
		args = append(args, f.RouteID)
	}
	return strings.Join(where, " AND "), args
}

// List returns trips matching f ordered by date then creation.
func (r TripRepository) List(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	where, args := buildTripWhere(f)
	query := tripSelect + ` WHERE ` + where + ` ORDER BY t.trip_date ASC, t.created_at ASC, t.id ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: query: %w", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}
	return out, nil
}

// ListMonth returns the trips of the calendar month containing month,
// optionally narrowed to one driver (whole name, any case) and a route id.
func (r TripRepository) ListMonth(ctx context.Context, month time.Time, driver string, routeID int64) ([]models.Trip, error) {
	start, end := utils.MonthBounds(month)
	return r.List(ctx, models.TripFilter{
		DateRange:   domain.DateRange{Start: start, End: end},
		Driver:      driver,
		ExactDriver: true,
		RouteID:     routeID,
	})
}

func (r TripRepository) Get(ctx context.Context, id int64) (models.Trip, error) {
	row := r.DB.QueryRowContext(ctx, tripSelect+` WHERE t.id = ?`, id)
	t, err := scanTrip(row)
	if err != nil {
		return models.Trip{}, notFound(err, "trip", id, "get trip")
	}
	return t, nil
}

func (r TripRepository) Create(ctx context.Context, t *models.Trip) error {
	t.CreatedAt = intdb.NowStamp()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO daily_trips (route_id, trip_date, distance_km, cargo_weight, driver_name, license_plate, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.RouteID, t.Date, t.DistanceKm, t.CargoWeight, t.DriverName, t.LicensePlate, t.Notes, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create trip: insert: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE daily_trips
		SET route_id = ?, trip_date = ?, distance_km = ?, cargo_weight = ?, driver_name = ?, license_plate = ?, notes = ?
		WHERE id = ?
	`, t.RouteID, t.Date, t.DistanceKm, t.CargoWeight, t.DriverName, t.LicensePlate, t.Notes, t.ID)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	return expectAffected(res, "trip", t.ID)
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM daily_trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return expectAffected(res, "trip", id)
}

// DeleteByDate removes every trip logged on date and returns how many went.
func (r TripRepository) DeleteByDate(ctx context.Context, date string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM daily_trips WHERE trip_date = ?`, date)
	if err != nil {
		return 0, fmt.Errorf("delete trips by date: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// PlatesFor lists the plates recorded for an exact (driver, route, date)
// triple, most recently created first. Duplicates are kept.
func (r TripRepository) PlatesFor(ctx context.Context, driver string, routeID int64, date string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT license_plate
		FROM daily_trips
		WHERE driver_name = ? AND route_id = ? AND trip_date = ?
		ORDER BY created_at DESC, id DESC
	`, driver, routeID, date)
	if err != nil {
		return nil, fmt.Errorf("plates for trip: query: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("plates for trip: scan row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r TripRepository) CountOnDate(ctx context.Context, date string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_trips WHERE trip_date = ?`, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return n, nil
}
