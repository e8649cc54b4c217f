package handlers

import (
	"net/http"

	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) tripReportService(c *gin.Context) services.TripReportService {
	return services.TripReportService{
		Trips:     repositories.TripRepository{DB: conn(c)},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handler) salaryService(c *gin.Context) services.SalaryService {
	return services.SalaryService{
		Trips:     repositories.TripRepository{DB: conn(c)},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /reports/trips
func (h Handler) TripReport(c *gin.Context) {
	ctx := c.Request.Context()
	rep, err := h.tripReportService(c).Build(ctx, tripFilterQuery(c))
	if err != nil {
		h.fail(c, err, "/", "trip_report", "build")
		return
	}
	h.render(c, http.StatusOK, "trip_report.tmpl", gin.H{
		"Title":  "Trip report",
		"Report": rep,
		"Query":  c.Request.URL.RawQuery,
	})
}

// GET /salary
func (h Handler) Salary(c *gin.Context) {
	ctx := c.Request.Context()
	rep, err := h.salaryService(c).Calculate(ctx, salaryQuery(c))
	if err != nil {
		h.fail(c, err, "/", "salary", "calculate")
		return
	}
	routes, err := repositories.RouteRepository{DB: conn(c)}.List(ctx)
	if err != nil {
		h.fail(c, err, "/", "salary", "calculate")
		return
	}
	h.render(c, http.StatusOK, "salary.tmpl", gin.H{
		"Title":      "Salary",
		"Report":     rep,
		"MonthLabel": services.MonthLabel(rep.Month),
		"Routes":     routes,
		"Query":      c.Request.URL.RawQuery,
	})
}

// GET /salary/pdf
func (h Handler) SalaryPDF(c *gin.Context) {
	svc := services.DocsService{
		Salary:    h.salaryService(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.SalaryStatement(c.Request.Context(), salaryQuery(c))
	if err != nil {
		h.fail(c, err, "/salary", "docs", "salary_pdf")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
