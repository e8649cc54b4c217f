package models

import "fleetlog/internal/domain"

// Trip is one logged journey by a driver on a route and date.
type Trip struct {
	ID           int64   `json:"id"`
	RouteID      int64   `json:"route_id"`
	Date         string  `json:"date"`
	DistanceKm   float64 `json:"distance_km"`
	CargoWeight  float64 `json:"cargo_weight"`
	DriverName   string  `json:"driver_name"`
	LicensePlate string  `json:"license_plate"`
	Notes        string  `json:"notes"`
	CreatedAt    string  `json:"created_at"`

	// Joined from routes regardless of the route's status.
	RouteCode     string               `json:"route_code"`
	RouteName     string               `json:"route_name"`
	RouteDistance float64              `json:"route_distance"`
	MonthlySalary float64              `json:"monthly_salary"`
	Category      domain.RouteCategory `json:"category"`
}

// TripFilter narrows trip listings. Substring fields are case-insensitive.
type TripFilter struct {
	domain.DateRange
	Driver      string
	// ExactDriver matches Driver as a whole name, case-insensitively,
	// instead of as a substring.
	ExactDriver bool
	Plate       string
	Route       string
	RouteID     int64
}
