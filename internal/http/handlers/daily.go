package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tripChoices loads the dropdown options of the trip form. Only active
// master records are offered.
func tripChoices(ctx context.Context, db intdb.DBTX) (gin.H, error) {
	routes, err := repositories.RouteRepository{DB: db}.List(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := repositories.EmployeeRepository{DB: db}.List(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := repositories.VehicleRepository{DB: db}.List(ctx)
	if err != nil {
		return nil, err
	}
	return gin.H{"Routes": routes, "Employees": employees, "Vehicles": vehicles}, nil
}

// activeRoute rejects trips pointing at a missing or retired route. keep
// allows an edited trip to stay on the route it already had.
func activeRoute(ctx context.Context, db intdb.DBTX, id, keep int64) error {
	rt, err := repositories.RouteRepository{DB: db}.Get(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ValidationError{Field: "route_id", Msg: "unknown route", Err: err}
		}
		return err
	}
	if !rt.Active() && rt.ID != keep {
		return domain.ValidationError{Field: "route_id", Msg: "route is no longer active"}
	}
	return nil
}

// withTripRoute keeps a retired route selectable on the trip that uses it.
func withTripRoute(routes []models.Route, t models.Trip) []models.Route {
	for _, rt := range routes {
		if rt.ID == t.RouteID {
			return routes
		}
	}
	return append(routes, models.Route{
		ID: t.RouteID, Code: t.RouteCode, Name: t.RouteName + " (retired)",
		Distance: t.RouteDistance, MonthlySalary: t.MonthlySalary, Category: t.Category,
	})
}

func dailyURL(date string) string {
	return "/daily?date=" + date
}

// GET /daily
func (h Handler) Daily(c *gin.Context) {
	ctx := c.Request.Context()
	date := utils.DateOrToday(c.Query("date"))

	trips, err := repositories.TripRepository{DB: conn(c)}.List(ctx, models.TripFilter{
		DateRange: domain.DateRange{Start: date, End: date},
	})
	if err != nil {
		h.fail(c, err, "/", "daily", "list")
		return
	}
	data, err := tripChoices(ctx, conn(c))
	if err != nil {
		h.fail(c, err, "/", "daily", "list")
		return
	}
	data["Title"] = "Daily trips"
	data["Date"] = date
	data["Trips"] = trips
	h.render(c, http.StatusOK, "daily.tmpl", data)
}

// POST /daily/add
func (h Handler) CreateTrip(c *gin.Context) {
	var f tripForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, dailyURL(utils.DateOrToday(c.PostForm("date"))), "daily", "create")
		return
	}
	t, err := f.model()
	back := dailyURL(t.Date)
	if err != nil {
		h.fail(c, err, back, "daily", "create")
		return
	}

	ctx := c.Request.Context()
	err = intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		if err := activeRoute(ctx, tx, t.RouteID, 0); err != nil {
			return err
		}
		return repositories.TripRepository{DB: tx}.Create(ctx, &t)
	})
	if err != nil {
		h.fail(c, err, back, "daily", "create")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "daily", "create", "trip logged",
		zap.Int64("id", t.ID), zap.String("date", t.Date), zap.String("driver", t.DriverName))
	redirect(c, back, "Trip added")
}

// GET /daily/:id/edit
func (h Handler) EditTripPage(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := repositories.TripRepository{DB: conn(c)}.Get(ctx, idParam(c))
	if err != nil {
		h.fail(c, err, "/daily", "daily", "edit")
		return
	}
	data, err := tripChoices(ctx, conn(c))
	if err != nil {
		h.fail(c, err, "/daily", "daily", "edit")
		return
	}
	data["Routes"] = withTripRoute(data["Routes"].([]models.Route), t)
	data["Title"] = "Edit trip"
	data["Trip"] = t
	h.render(c, http.StatusOK, "trip_edit.tmpl", data)
}

// POST /daily/:id/edit
func (h Handler) UpdateTrip(c *gin.Context) {
	id := idParam(c)
	editURL := "/daily/" + strconv.FormatInt(id, 10) + "/edit"
	var f tripForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, editURL, "daily", "update")
		return
	}
	t, err := f.model()
	if err != nil {
		h.fail(c, err, editURL, "daily", "update")
		return
	}
	t.ID = id

	ctx := c.Request.Context()
	err = intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		repo := repositories.TripRepository{DB: tx}
		old, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := activeRoute(ctx, tx, t.RouteID, old.RouteID); err != nil {
			return err
		}
		return repo.Update(ctx, t)
	})
	if err != nil {
		if domain.IsValidation(err) {
			h.fail(c, err, editURL, "daily", "update")
			return
		}
		h.fail(c, err, "/daily", "daily", "update")
		return
	}
	redirect(c, dailyURL(t.Date), "Trip updated")
}

// POST /daily/:id/delete
func (h Handler) DeleteTrip(c *gin.Context) {
	id := idParam(c)
	back := dailyURL(utils.DateOrToday(c.PostForm("date")))
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.TripRepository{DB: tx}.Delete(ctx, id)
	})
	if err != nil {
		h.fail(c, err, back, "daily", "delete")
		return
	}
	redirect(c, back, "Trip deleted")
}

// POST /daily/delete-by-date
func (h Handler) DeleteTripsByDate(c *gin.Context) {
	date := utils.DateOrEmpty(c.PostForm("date"))
	if date == "" {
		h.fail(c, domain.ValidationError{Field: "date", Msg: "choose a date"}, "/daily", "daily", "delete_by_date")
		return
	}
	ctx := c.Request.Context()
	var n int64
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		var err error
		n, err = repositories.TripRepository{DB: tx}.DeleteByDate(ctx, date)
		return err
	})
	if err != nil {
		h.fail(c, err, dailyURL(date), "daily", "delete_by_date")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "daily", "delete_by_date", "trips deleted",
		zap.String("date", date), zap.Int64("count", n))
	redirect(c, dailyURL(date), strconv.FormatInt(n, 10)+" trip(s) deleted")
}
