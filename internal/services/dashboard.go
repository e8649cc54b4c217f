package services

import (
	"context"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"
)

type DashboardCounts struct {
	Employees  int    `json:"employees"`
	Vehicles   int    `json:"vehicles"`
	Routes     int    `json:"routes"`
	TripsToday int    `json:"trips_today"`
	Today      string `json:"today"`
}

func Dashboard(ctx context.Context, db intdb.DBTX) (DashboardCounts, error) {
	out := DashboardCounts{Today: utils.Today()}
	var err error
	if out.Employees, err = (repositories.EmployeeRepository{DB: db}).CountActive(ctx); err != nil {
		return out, err
	}
	if out.Vehicles, err = (repositories.VehicleRepository{DB: db}).CountActive(ctx); err != nil {
		return out, err
	}
	if out.Routes, err = (repositories.RouteRepository{DB: db}).CountActive(ctx); err != nil {
		return out, err
	}
	if out.TripsToday, err = (repositories.TripRepository{DB: db}).CountOnDate(ctx, out.Today); err != nil {
		return out, err
	}
	return out, nil
}
