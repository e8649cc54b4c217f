package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"fleetlog/internal/domain"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/services"
	"fleetlog/internal/sheets"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// exportTable builds the table for one export kind from the request query.
func (h Handler) exportTable(c *gin.Context, kind string) (sheets.Table, string, error) {
	ctx := c.Request.Context()
	db := conn(c)
	switch kind {
	case "employees":
		list, err := repositories.EmployeeRepository{DB: db}.List(ctx)
		return services.EmployeesTable(list), "employees", err
	case "vehicles":
		list, err := repositories.VehicleRepository{DB: db}.List(ctx)
		return services.VehiclesTable(list), "vehicles", err
	case "routes":
		list, err := repositories.RouteRepository{DB: db}.List(ctx)
		return services.RoutesTable(list), "routes", err
	case "trips":
		f := tripFilterQuery(c)
		list, err := repositories.TripRepository{DB: db}.List(ctx, f)
		return services.TripsTable(list), "trips", err
	case "trip-report":
		rep, err := h.tripReportService(c).Build(ctx, tripFilterQuery(c))
		if c.Query("view") == "detail" {
			return rep.DetailTable(), "trip_report_detail", err
		}
		return rep.SummaryTable(), "trip_report", err
	case "salary":
		rep, err := h.salaryService(c).Calculate(ctx, salaryQuery(c))
		return rep.Table(), "salary_" + rep.Month, err
	case "fuel":
		if c.Query("view") == "report" {
			rep, err := h.fuelService(c).Report(ctx, fuelFilterQuery(c))
			return rep.Table(), "fuel_report", err
		}
		list, err := repositories.FuelRepository{DB: db}.List(ctx, fuelFilterQuery(c))
		return services.FuelTable(list), "fuel", err
	case "finance":
		if c.Query("view") == "report" {
			rep, err := h.financeService(c).Report(ctx, financeFilterQuery(c))
			return rep.Table(), "finance_report", err
		}
		list, err := repositories.FinanceRepository{DB: db}.List(ctx, financeFilterQuery(c))
		return services.FinanceTable(list), "finance", err
	}
	return sheets.Table{}, "", domain.NotFoundError{Resource: "export " + kind}
}

// GET /export/:kind?format=csv|xlsx
func (h Handler) Export(c *gin.Context) {
	kind := strings.ToLower(c.Param("kind"))
	format := sheets.ParseFormat(c.Query("format"))

	table, base, err := h.exportTable(c, kind)
	if err != nil {
		h.fail(c, err, "/", "export", kind)
		return
	}

	var buf bytes.Buffer
	if err := sheets.Write(&buf, format, table); err != nil {
		h.fail(c, err, "/", "export", kind)
		return
	}
	filename := format.Filename(base, utils.Today())
	utils.LogEvent(middleware.GetRequestID(c), "export", kind, "export generated",
		zap.String("format", string(format)), zap.Int("rows", len(table.Rows)))

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
