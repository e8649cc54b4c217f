package services

import (
	"strings"

	"fleetlog/internal/domain/models"
	"fleetlog/internal/sheets"
)

func EmployeesTable(list []models.Employee) sheets.Table {
	t := sheets.Table{
		Title: "Employees",
		Columns: []sheets.Column{
			{Header: "ID", Width: 8, Kind: sheets.Int, NoTotal: true},
			{Header: "Name", Width: 26},
			{Header: "Phone", Width: 16},
			{Header: "Position", Width: 16},
			{Header: "License No", Width: 16},
			{Header: "Base Salary", Width: 16, Kind: sheets.Money},
			{Header: "Documents", Width: 8, Kind: sheets.Int, NoTotal: true},
		},
	}
	for _, e := range list {
		t.Rows = append(t.Rows, []any{e.ID, e.Name, e.Phone, e.Position, e.LicenseNo, e.BaseSalary, len(e.Documents)})
	}
	return t
}

func VehiclesTable(list []models.Vehicle) sheets.Table {
	t := sheets.Table{
		Title: "Vehicles",
		Columns: []sheets.Column{
			{Header: "ID", Width: 8, Kind: sheets.Int, NoTotal: true},
			{Header: "License Plate", Width: 16},
			{Header: "Type", Width: 16},
			{Header: "Capacity", Width: 12, Kind: sheets.Decimal, NoTotal: true},
			{Header: "Fuel Consumption", Width: 16, Kind: sheets.Decimal, NoTotal: true},
			{Header: "Documents", Width: 8, Kind: sheets.Int, NoTotal: true},
		},
	}
	for _, v := range list {
		t.Rows = append(t.Rows, []any{v.ID, v.LicensePlate, v.VehicleType, v.Capacity, v.FuelConsumption, len(v.Documents)})
	}
	return t
}

func RoutesTable(list []models.Route) sheets.Table {
	t := sheets.Table{
		Title: "Routes",
		Columns: []sheets.Column{
			{Header: "ID", Width: 8, Kind: sheets.Int, NoTotal: true},
			{Header: "Code", Width: 12},
			{Header: "Name", Width: 28},
			{Header: "Distance (km)", Width: 14, Kind: sheets.Decimal, NoTotal: true},
			{Header: "Monthly Salary", Width: 16, Kind: sheets.Money, NoTotal: true},
			{Header: "Category", Width: 14},
		},
	}
	for _, r := range list {
		t.Rows = append(t.Rows, []any{r.ID, r.Code, r.Name, r.Distance, r.MonthlySalary, r.Category.Label()})
	}
	return t
}

func TripsTable(list []models.Trip) sheets.Table {
	t := sheets.Table{
		Title: "Trips",
		Columns: []sheets.Column{
			{Header: "Date", Width: 12},
			{Header: "Driver", Width: 22},
			{Header: "Plate", Width: 14},
			{Header: "Route Code", Width: 12},
			{Header: "Route Name", Width: 26},
			{Header: "Distance (km)", Width: 14, Kind: sheets.Decimal},
			{Header: "Cargo", Width: 12, Kind: sheets.Decimal},
			{Header: "Notes", Width: 30},
		},
		Totals: true,
	}
	for _, r := range list {
		t.Rows = append(t.Rows, []any{r.Date, r.DriverName, r.LicensePlate, r.RouteCode, r.RouteName, r.DistanceKm, r.CargoWeight, r.Notes})
	}
	return t
}

func (r TripReport) SummaryTable() sheets.Table {
	t := sheets.Table{
		Title: "Trip report",
		Columns: []sheets.Column{
			{Header: "Driver", Width: 24},
			{Header: "Trips", Width: 8, Kind: sheets.Int},
			{Header: "Distance (km)", Width: 14, Kind: sheets.Decimal},
			{Header: "Cargo", Width: 12, Kind: sheets.Decimal},
			{Header: "Routes", Width: 28},
			{Header: "Last Plate", Width: 14},
		},
		Totals: true,
	}
	for _, d := range r.Summary {
		t.Rows = append(t.Rows, []any{d.Driver, d.Trips, d.Distance, d.Cargo, strings.Join(d.RouteCodes, ", "), d.LastPlate})
	}
	return t
}

func (r TripReport) DetailTable() sheets.Table {
	t := TripsTable(r.Details)
	t.Title = "Trip details"
	return t
}

func (r SalaryReport) Table() sheets.Table {
	t := sheets.Table{
		Title: "Salary " + r.Month,
		Columns: []sheets.Column{
			{Header: "Date", Width: 12},
			{Header: "Driver", Width: 22},
			{Header: "Route Code", Width: 12},
			{Header: "Route Name", Width: 24},
			{Header: "Category", Width: 14},
			{Header: "Distance (km)", Width: 14, Kind: sheets.Decimal},
			{Header: "Plates", Width: 18},
			{Header: "Pay", Width: 16, Kind: sheets.Money},
		},
		Totals: true,
	}
	for _, l := range r.Lines {
		t.Rows = append(t.Rows, []any{l.Date, l.Driver, l.RouteCode, l.RouteName, l.Category.Label(), l.Distance, l.Plates, l.Pay})
	}
	return t
}

func FuelTable(list []models.FuelRecord) sheets.Table {
	t := sheets.Table{
		Title: "Fuel",
		Columns: []sheets.Column{
			{Header: "Date", Width: 12},
			{Header: "License Plate", Width: 14},
			{Header: "Fuel Type", Width: 12},
			{Header: "Price per Liter", Width: 14, Kind: sheets.Money, NoTotal: true},
			{Header: "Liters", Width: 10, Kind: sheets.Decimal},
			{Header: "Cost", Width: 14, Kind: sheets.Money},
			{Header: "Odometer", Width: 12, Kind: sheets.Decimal, NoTotal: true},
			{Header: "Notes", Width: 28},
		},
		Totals: true,
	}
	for _, f := range list {
		t.Rows = append(t.Rows, []any{f.Date, f.LicensePlate, f.FuelType, f.PricePerLiter, f.LitersPumped, f.CostPumped, f.Odometer, f.Notes})
	}
	return t
}

func (r FuelReport) Table() sheets.Table {
	t := sheets.Table{
		Title: "Fuel report",
		Columns: []sheets.Column{
			{Header: "License Plate", Width: 16},
			{Header: "Records", Width: 10, Kind: sheets.Int},
			{Header: "Liters", Width: 12, Kind: sheets.Decimal},
			{Header: "Cost", Width: 16, Kind: sheets.Money},
		},
		Totals: true,
	}
	for _, p := range r.ByPlate {
		t.Rows = append(t.Rows, []any{p.Plate, p.Records, p.Liters, p.Cost})
	}
	return t
}

func FinanceTable(list []models.FinanceTransaction) sheets.Table {
	t := sheets.Table{
		Title: "Finance",
		Columns: []sheets.Column{
			{Header: "Date", Width: 12},
			{Header: "Kind", Width: 10},
			{Header: "Category", Width: 16},
			{Header: "Description", Width: 30},
			{Header: "Amount", Width: 14, Kind: sheets.Money},
			{Header: "VAT %", Width: 8, Kind: sheets.Decimal, NoTotal: true},
			{Header: "Discount %", Width: 10, Kind: sheets.Decimal, NoTotal: true},
			{Header: "Total", Width: 14, Kind: sheets.Money},
			{Header: "Notes", Width: 24},
		},
		Totals: true,
	}
	for _, f := range list {
		t.Rows = append(t.Rows, []any{f.Date, string(f.Kind), f.Category, f.Description, f.Amount, f.VATPercent, f.DiscountPercent, f.Total, f.Notes})
	}
	return t
}

func (r FinanceReport) Table() sheets.Table {
	t := sheets.Table{
		Title: "Finance report",
		Columns: []sheets.Column{
			{Header: "Kind", Width: 10},
			{Header: "Category", Width: 20},
			{Header: "Entries", Width: 10, Kind: sheets.Int, NoTotal: true},
			{Header: "Total", Width: 16, Kind: sheets.Money, NoTotal: true},
		},
	}
	for _, c := range r.ByCategory {
		t.Rows = append(t.Rows, []any{string(c.Kind), c.Category, c.Count, c.Total})
	}
	t.Rows = append(t.Rows,
		[]any{"", "Income", "", r.Income},
		[]any{"", "Expense", "", r.Expense},
		[]any{"", "Net", "", r.Net},
	)
	return t
}
