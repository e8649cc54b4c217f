package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"

	"go.uber.org/zap"
)

// SalaryLine is the pay earned by one trip.
type SalaryLine struct {
	TripID    int64                `json:"trip_id"`
	Date      string               `json:"date"`
	Driver    string               `json:"driver"`
	RouteID   int64                `json:"route_id"`
	RouteCode string               `json:"route_code"`
	RouteName string               `json:"route_name"`
	Category  domain.RouteCategory `json:"category"`
	Distance  float64              `json:"distance"`
	Plates    string               `json:"plates"`
	Pay       float64              `json:"pay"`
}

// NoDriverLabel names the subtotal of trips logged without a driver.
const NoDriverLabel = "(no driver)"

type DriverSalary struct {
	Driver        string  `json:"driver"`
	Trips         int     `json:"trips"`
	Standard      float64 `json:"standard"`
	Reinforcement float64 `json:"reinforcement"`
	Total         float64 `json:"total"`
}

type SalaryReport struct {
	Month              string         `json:"month"`
	Start              string         `json:"start"`
	End                string         `json:"end"`
	Driver             string         `json:"driver,omitempty"`
	RouteID            int64          `json:"route_id,omitempty"`
	Lines              []SalaryLine   `json:"lines"`
	Drivers            []DriverSalary `json:"drivers"`
	StandardTotal      float64        `json:"standard_total"`
	ReinforcementTotal float64        `json:"reinforcement_total"`
	GrandTotal         float64        `json:"grand_total"`
}

// CalculateSalary prices every trip with its route's current rate and sums
// the result per category and per driver. plates resolves the plate display
// for a trip and may be nil.
func CalculateSalary(trips []models.Trip, plates func(models.Trip) string) SalaryReport {
	rep := SalaryReport{Lines: make([]SalaryLine, 0, len(trips))}
	byDriver := map[string]*DriverSalary{}

	for _, t := range trips {
		pay := domain.TripPay(t.Category, t.DistanceKm, t.RouteDistance, t.MonthlySalary)
		dist := t.DistanceKm
		if dist <= 0 && t.Category == domain.CategoryReinforcement {
			dist = t.RouteDistance
		}

		line := SalaryLine{
			TripID:    t.ID,
			Date:      t.Date,
			Driver:    strings.TrimSpace(t.DriverName),
			RouteID:   t.RouteID,
			RouteCode: t.RouteCode,
			RouteName: t.RouteName,
			Category:  t.Category,
			Distance:  dist,
			Pay:       pay,
		}
		if plates != nil {
			line.Plates = plates(t)
		}
		rep.Lines = append(rep.Lines, line)

		name := line.Driver
		if name == "" {
			name = NoDriverLabel
		}
		d, ok := byDriver[name]
		if !ok {
			d = &DriverSalary{Driver: name}
			byDriver[name] = d
		}
		d.Trips++
		d.Total += pay
		if t.Category == domain.CategoryReinforcement {
			d.Reinforcement += pay
			rep.ReinforcementTotal += pay
		} else {
			d.Standard += pay
			rep.StandardTotal += pay
		}
	}
	rep.GrandTotal = rep.StandardTotal + rep.ReinforcementTotal

	sort.SliceStable(rep.Lines, func(i, j int) bool {
		a, b := rep.Lines[i], rep.Lines[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Driver != b.Driver {
			return a.Driver < b.Driver
		}
		return a.TripID < b.TripID
	})

	rep.Drivers = make([]DriverSalary, 0, len(byDriver))
	for _, d := range byDriver {
		rep.Drivers = append(rep.Drivers, *d)
	}
	sort.Slice(rep.Drivers, func(i, j int) bool { return rep.Drivers[i].Driver < rep.Drivers[j].Driver })
	return rep
}

// JoinPlates keeps the first occurrence of each non-empty plate, preserving
// order, and joins them with ", ".
func JoinPlates(plates []string) string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(plates))
	for _, p := range plates {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

type SalaryService struct {
	Trips     repositories.TripRepository
	RequestID string
}

type SalaryQuery struct {
	Month   string
	Driver  string
	RouteID int64
}

// Calculate computes the salary report for q. A malformed month falls back
// to the current one.
func (s SalaryService) Calculate(ctx context.Context, q SalaryQuery) (SalaryReport, error) {
	month := utils.ParseMonthOrCurrent(q.Month)
	trips, err := s.Trips.ListMonth(ctx, month, q.Driver, q.RouteID)
	if err != nil {
		return SalaryReport{}, fmt.Errorf("salary: %w", err)
	}

	type key struct {
		driver  string
		routeID int64
		date    string
	}
	cache := map[key]string{}
	var lookupErr error
	plates := func(t models.Trip) string {
		k := key{t.DriverName, t.RouteID, t.Date}
		if v, ok := cache[k]; ok {
			return v
		}
		list, err := s.Trips.PlatesFor(ctx, t.DriverName, t.RouteID, t.Date)
		if err != nil {
			if lookupErr == nil {
				lookupErr = err
			}
			return ""
		}
		cache[k] = JoinPlates(list)
		return cache[k]
	}

	rep := CalculateSalary(trips, plates)
	if lookupErr != nil {
		return SalaryReport{}, fmt.Errorf("salary: plate lookup: %w", lookupErr)
	}
	rep.Month = month.Format(utils.LayoutMonth)
	rep.Start, rep.End = utils.MonthBounds(month)
	rep.Driver = strings.TrimSpace(q.Driver)
	rep.RouteID = q.RouteID

	utils.LogEvent(s.RequestID, "salary", "calculate", "salary calculated",
		zap.String("month", rep.Month), zap.Int("trips", len(rep.Lines)))
	return rep, nil
}

// MonthLabel renders "March 2024" for YYYY-MM; other input is returned as is.
func MonthLabel(month string) string {
	t, err := time.Parse(utils.LayoutMonth, month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}
