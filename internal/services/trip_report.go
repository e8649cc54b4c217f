package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fleetlog/internal/domain/models"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"

	"go.uber.org/zap"
)

// DriverSummary is one row of the trip report per distinct driver.
type DriverSummary struct {
	Driver     string   `json:"driver"`
	Trips      int      `json:"trips"`
	Distance   float64  `json:"distance"`
	Cargo      float64  `json:"cargo"`
	RouteCodes []string `json:"route_codes"`
	LastPlate  string   `json:"last_plate"`
}

type TripReport struct {
	Filter        models.TripFilter `json:"filter"`
	Summary       []DriverSummary   `json:"summary"`
	Details       []models.Trip     `json:"details"`
	TotalTrips    int               `json:"total_trips"`
	TotalDistance float64           `json:"total_distance"`
	TotalCargo    float64           `json:"total_cargo"`
}

// later reports whether a was logged after b.
func later(a, b models.Trip) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.ID > b.ID
}

// AggregateTrips groups trips by driver. Trips without a driver name are
// dropped from both outputs. Details are ordered by driver, date, then id;
// summaries by driver.
func AggregateTrips(trips []models.Trip) ([]DriverSummary, []models.Trip) {
	type acc struct {
		sum       DriverSummary
		codes     map[string]struct{}
		plateTrip models.Trip
		hasPlate  bool
	}

	byDriver := map[string]*acc{}
	details := make([]models.Trip, 0, len(trips))

	for _, t := range trips {
		driver := strings.TrimSpace(t.DriverName)
		if driver == "" {
			continue
		}
		details = append(details, t)

		a, ok := byDriver[driver]
		if !ok {
			a = &acc{sum: DriverSummary{Driver: driver}, codes: map[string]struct{}{}}
			byDriver[driver] = a
		}
		a.sum.Trips++
		a.sum.Distance += t.DistanceKm
		a.sum.Cargo += t.CargoWeight
		if code := strings.TrimSpace(t.RouteCode); code != "" {
			a.codes[code] = struct{}{}
		}
		if strings.TrimSpace(t.LicensePlate) != "" && (!a.hasPlate || later(t, a.plateTrip)) {
			a.plateTrip = t
			a.hasPlate = true
		}
	}

	sort.SliceStable(details, func(i, j int) bool {
		di, dj := strings.TrimSpace(details[i].DriverName), strings.TrimSpace(details[j].DriverName)
		if di != dj {
			return di < dj
		}
		if details[i].Date != details[j].Date {
			return details[i].Date < details[j].Date
		}
		return details[i].ID < details[j].ID
	})

	summary := make([]DriverSummary, 0, len(byDriver))
	for _, a := range byDriver {
		a.sum.RouteCodes = make([]string, 0, len(a.codes))
		for c := range a.codes {
			a.sum.RouteCodes = append(a.sum.RouteCodes, c)
		}
		sort.Strings(a.sum.RouteCodes)
		if a.hasPlate {
			a.sum.LastPlate = a.plateTrip.LicensePlate
		}
		summary = append(summary, a.sum)
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Driver < summary[j].Driver })

	return summary, details
}

type TripReportService struct {
	Trips     repositories.TripRepository
	RequestID string
}

// Build loads trips matching f and aggregates them.
func (s TripReportService) Build(ctx context.Context, f models.TripFilter) (TripReport, error) {
	trips, err := s.Trips.List(ctx, f)
	if err != nil {
		return TripReport{}, fmt.Errorf("trip report: %w", err)
	}

	summary, details := AggregateTrips(trips)
	rep := TripReport{Filter: f, Summary: summary, Details: details}
	for _, d := range summary {
		rep.TotalTrips += d.Trips
		rep.TotalDistance += d.Distance
		rep.TotalCargo += d.Cargo
	}

	utils.LogEvent(s.RequestID, "trip_report", "build", "trip report built",
		zap.Int("drivers", len(summary)), zap.Int("trips", len(details)))
	return rep, nil
}
