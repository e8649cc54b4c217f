package models

import "fleetlog/internal/domain"

// Employee is a driver or other staff member.
type Employee struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Phone      string        `json:"phone"`
	Position   string        `json:"position"`
	LicenseNo  string        `json:"license_no"`
	BaseSalary float64       `json:"base_salary"`
	Documents  []string      `json:"documents"`
	Status     domain.Status `json:"status"`
	CreatedAt  string        `json:"created_at"`
}

type Vehicle struct {
	ID              int64         `json:"id"`
	LicensePlate    string        `json:"license_plate"`
	VehicleType     string        `json:"vehicle_type"`
	Capacity        float64       `json:"capacity"`
	FuelConsumption float64       `json:"fuel_consumption"`
	Documents       []string      `json:"documents"`
	Status          domain.Status `json:"status"`
	CreatedAt       string        `json:"created_at"`
}

// Route is a fixed itinerary with its pay scheme.
type Route struct {
	ID            int64                `json:"id"`
	Code          string               `json:"route_code"`
	Name          string               `json:"route_name"`
	Distance      float64              `json:"distance"`
	MonthlySalary float64              `json:"monthly_salary"`
	Category      domain.RouteCategory `json:"category"`
	Status        domain.Status        `json:"status"`
	CreatedAt     string               `json:"created_at"`
}

func (r Route) Active() bool { return r.Status == domain.StatusActive }

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}
