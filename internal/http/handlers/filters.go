package handlers

import (
	"strings"

	"fleetlog/internal/domain"
	"fleetlog/internal/domain/models"
	"fleetlog/internal/services"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
)

// Query-string filters shared by pages, exports and the JSON API. Bad dates
// are dropped rather than rejected.

func dateRangeQuery(c *gin.Context) domain.DateRange {
	return domain.DateRange{
		Start: utils.DateOrEmpty(c.Query("start")),
		End:   utils.DateOrEmpty(c.Query("end")),
	}
}

func tripFilterQuery(c *gin.Context) models.TripFilter {
	return models.TripFilter{
		DateRange: dateRangeQuery(c),
		Driver:    strings.TrimSpace(c.Query("driver")),
		Plate:     strings.TrimSpace(c.Query("plate")),
		Route:     strings.TrimSpace(c.Query("route")),
		RouteID:   utils.ParseID(c.Query("route_id")),
	}
}

func salaryQuery(c *gin.Context) services.SalaryQuery {
	return services.SalaryQuery{
		Month:   c.Query("month"),
		Driver:  strings.TrimSpace(c.Query("driver")),
		RouteID: utils.ParseID(c.Query("route_id")),
	}
}

func fuelFilterQuery(c *gin.Context) models.FuelFilter {
	return models.FuelFilter{
		DateRange: dateRangeQuery(c),
		Plate:     strings.TrimSpace(c.Query("plate")),
	}
}

func financeFilterQuery(c *gin.Context) models.FinanceFilter {
	f := models.FinanceFilter{
		DateRange: dateRangeQuery(c),
		Category:  strings.TrimSpace(c.Query("category")),
	}
	if k := strings.TrimSpace(c.Query("kind")); k != "" {
		f.Kind = string(domain.ParseTxKind(k))
	}
	return f
}
