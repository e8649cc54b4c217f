package handlers

import (
	"net/http"
	"strings"

	"fleetlog/internal/domain"
	"fleetlog/internal/repositories"
	"fleetlog/internal/services"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/routes/:id
// Retired routes are returned too so old trips can still show their route.
func (h Handler) APIRoute(c *gin.Context) {
	id := idParam(c)
	if id == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid route id"})
		return
	}
	rt, err := repositories.RouteRepository{DB: conn(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// GET /api/trips/plate?driver=&route_id=&date=
func (h Handler) APITripPlates(c *gin.Context) {
	driver := strings.TrimSpace(c.Query("driver"))
	routeID := utils.ParseID(c.Query("route_id"))
	date := utils.DateOrEmpty(c.Query("date"))
	if driver == "" || routeID == 0 || date == "" {
		RespondDomainError(c, domain.ValidationError{Msg: "driver, route_id and date are required"})
		return
	}
	plates, err := repositories.TripRepository{DB: conn(c)}.PlatesFor(c.Request.Context(), driver, routeID, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plates": plates, "display": services.JoinPlates(plates)})
}

// GET /api/salary
func (h Handler) APISalary(c *gin.Context) {
	rep, err := h.salaryService(c).Calculate(c.Request.Context(), salaryQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/trip-report
func (h Handler) APITripReport(c *gin.Context) {
	rep, err := h.tripReportService(c).Build(c.Request.Context(), tripFilterQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// POST /api/fuel/import
func (h Handler) APIFuelImport(c *gin.Context) {
	rep, err := h.importUpload(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/dashboard
func (h Handler) APIDashboard(c *gin.Context) {
	counts, err := services.Dashboard(c.Request.Context(), conn(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
