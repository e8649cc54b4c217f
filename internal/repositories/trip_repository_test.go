package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripCols = []string{
	"id", "route_id", "trip_date", "distance_km", "cargo_weight", "driver_name", "license_plate", "notes", "created_at",
	"route_code", "route_name", "distance", "monthly_salary", "category",
}

func TestBuildTripWhere(t *testing.T) {
	where, args := buildTripWhere(models.TripFilter{
		DateRange: domain.DateRange{Start: "2024-03-01", End: "2024-03-31"},
		Driver:    " An ",
		Plate:     "b12",
		Route:     "NA_",
		RouteID:   4,
	})

	for _, frag := range []string{
		"t.trip_date >= ?",
		"t.trip_date <= ?",
		"INSTR(LOWER(t.driver_name), ?) > 0",
		"INSTR(LOWER(t.license_plate), ?) > 0",
		"INSTR(LOWER(COALESCE(r.route_code, '')), ?) > 0 OR",
		"t.route_id = ?",
	} {
		if !strings.Contains(where, frag) {
			t.Fatalf("where clause missing %q: %s", frag, where)
		}
	}
	want := []any{"2024-03-01", "2024-03-31", "an", "b12", "na_", "na_", int64(4)}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %v", len(want), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: expected %v, got %v", i, want[i], args[i])
		}
	}
}

func TestBuildTripWhereExactDriver(t *testing.T) {
	where, args := buildTripWhere(models.TripFilter{Driver: "  Ann  Lee ", ExactDriver: true})
	if !strings.Contains(where, "LOWER(TRIM(t.driver_name)) = ?") {
		t.Fatalf("expected whole-name match, got %s", where)
	}
	if strings.Contains(where, "INSTR(") {
		t.Fatalf("exact driver must not use substring match: %s", where)
	}
	if len(args) != 1 || args[0] != "ann lee" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestBuildTripWhereEmptyFilter(t *testing.T) {
	where, args := buildTripWhere(models.TripFilter{})
	if where != "1=1" || len(args) != 0 {
		t.Fatalf("unexpected empty filter %q %v", where, args)
	}
}

func TestTripListKeepsRetiredRouteData(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("LEFT JOIN routes r ON r.id = t.route_id WHERE .* ORDER BY t.trip_date ASC").
		WithArgs("2024-03-05", "2024-03-05").
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(1, 2, "2024-03-05", 0.0, 120.0, "An", "B1", "", "2024-03-05 07:00:00", "NA_001", "North", 40.0, 0.0, "reinforcement").
			AddRow(2, 9, "2024-03-05", 10.0, 0.0, "Binh", "B2", "", "2024-03-05 08:00:00", "", "", 0.0, 0.0, "standard"))

	trips, err := TripRepository{DB: db}.List(context.Background(), models.TripFilter{
		DateRange: domain.DateRange{Start: "2024-03-05", End: "2024-03-05"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[0].Category != domain.CategoryReinforcement || trips[0].RouteDistance != 40 {
		t.Fatalf("route columns not scanned: %+v", trips[0])
	}
	if trips[1].Category != domain.CategoryStandard {
		t.Fatalf("missing route should default to standard, got %s", trips[1].Category)
	}
}

func TestTripListMonthUsesCalendarBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM daily_trips t").
		WithArgs("2023-02-01", "2023-02-28", int64(3)).
		WillReturnRows(sqlmock.NewRows(tripCols))

	month := time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC)
	if _, err := (TripRepository{DB: db}).ListMonth(context.Background(), month, "", 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlatesForNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("WHERE driver_name = \\? AND route_id = \\? AND trip_date = \\?\\s+ORDER BY created_at DESC, id DESC").
		WithArgs("An", int64(2), "2024-03-05").
		WillReturnRows(sqlmock.NewRows([]string{"license_plate"}).AddRow("B2").AddRow("").AddRow("B1"))

	plates, err := TripRepository{DB: db}.PlatesFor(context.Background(), "An", 2, "2024-03-05")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Join(plates, "|") != "B2||B1" {
		t.Fatalf("unexpected plates %v", plates)
	}
}

func TestDeleteByDateReturnsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM daily_trips WHERE trip_date = \\?").WithArgs("2024-03-05").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := TripRepository{DB: db}.DeleteByDate(context.Background(), "2024-03-05")
	if err != nil || n != 3 {
		t.Fatalf("expected 3 deleted, got %d (%v)", n, err)
	}
}

func TestTripUpdateMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE daily_trips").WillReturnResult(sqlmock.NewResult(0, 0))

	err = TripRepository{DB: db}.Update(context.Background(), models.Trip{ID: 8, RouteID: 1, Date: "2024-03-05"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
