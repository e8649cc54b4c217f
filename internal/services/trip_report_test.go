package services

import (
	"reflect"
	"testing"

	"fleetlog/internal/domain/models"
)

func sampleTrips() []models.Trip {
	return []models.Trip{
		{ID: 1, Date: "2024-03-02", DriverName: "Binh", LicensePlate: "51C-111", RouteCode: "NA_004", DistanceKm: 120, CargoWeight: 5, CreatedAt: "2024-03-02 08:00:00"},
		{ID: 2, Date: "2024-03-01", DriverName: "An", LicensePlate: "51C-222", RouteCode: "NA_002", DistanceKm: 80, CargoWeight: 3, CreatedAt: "2024-03-01 08:00:00"},
		{ID: 3, Date: "2024-03-01", DriverName: "  ", LicensePlate: "51C-999", RouteCode: "NA_002", DistanceKm: 999},
		{ID: 4, Date: "2024-03-03", DriverName: "An", LicensePlate: "51C-333", RouteCode: "NA_004", DistanceKm: 50, CargoWeight: 1, CreatedAt: "2024-03-03 07:00:00"},
		{ID: 5, Date: "2024-03-01", DriverName: "An", LicensePlate: "51C-444", RouteCode: "NA_002", DistanceKm: 20, CargoWeight: 0, CreatedAt: "2024-03-01 09:00:00"},
		{ID: 6, Date: "2024-03-01", DriverName: "", LicensePlate: "51C-000"},
	}
}

func TestAggregateTripsCountsMatchDetails(t *testing.T) {
	summary, details := AggregateTrips(sampleTrips())

	total := 0
	for _, s := range summary {
		total += s.Trips
	}
	if total != len(details) {
		t.Fatalf("summary counts %d != details %d", total, len(details))
	}
	if len(details) != 4 {
		t.Fatalf("expected blank drivers to be excluded, got %d details", len(details))
	}
}

func TestAggregateTripsSummary(t *testing.T) {
	summary, _ := AggregateTrips(sampleTrips())
	if len(summary) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(summary))
	}

	an := summary[0]
	if an.Driver != "An" || an.Trips != 3 {
		t.Fatalf("unexpected first row %+v", an)
	}
	if an.Distance != 150 || an.Cargo != 4 {
		t.Fatalf("unexpected sums %+v", an)
	}
	if !reflect.DeepEqual(an.RouteCodes, []string{"NA_002", "NA_004"}) {
		t.Fatalf("unexpected route codes %v", an.RouteCodes)
	}
	if an.LastPlate != "51C-333" {
		t.Fatalf("expected most recent plate 51C-333, got %s", an.LastPlate)
	}
	if summary[1].Driver != "Binh" || summary[1].LastPlate != "51C-111" {
		t.Fatalf("unexpected second row %+v", summary[1])
	}
}

func TestAggregateTripsDetailOrder(t *testing.T) {
	_, details := AggregateTrips(sampleTrips())
	var ids []int64
	for _, d := range details {
		ids = append(ids, d.ID)
	}
	if !reflect.DeepEqual(ids, []int64{2, 5, 4, 1}) {
		t.Fatalf("unexpected detail order %v", ids)
	}
}

func TestAggregateTripsLastPlateSameDayUsesCreation(t *testing.T) {
	trips := []models.Trip{
		{ID: 9, Date: "2024-03-01", DriverName: "Cuong", LicensePlate: "LATE", CreatedAt: "2024-03-01 18:00:00"},
		{ID: 10, Date: "2024-03-01", DriverName: "Cuong", LicensePlate: "EARLY", CreatedAt: "2024-03-01 06:00:00"},
		{ID: 11, Date: "2024-03-01", DriverName: "Cuong", LicensePlate: "", CreatedAt: "2024-03-01 20:00:00"},
	}
	summary, _ := AggregateTrips(trips)
	if summary[0].LastPlate != "LATE" {
		t.Fatalf("expected LATE, got %s", summary[0].LastPlate)
	}
}

func TestAggregateTripsEmpty(t *testing.T) {
	summary, details := AggregateTrips(nil)
	if summary == nil || details == nil || len(summary) != 0 || len(details) != 0 {
		t.Fatalf("expected empty non-nil outputs, got %v %v", summary, details)
	}
}
