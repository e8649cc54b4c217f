package handlers

import (
	"net/http"
	"strconv"

	"fleetlog/internal/domain"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) fuelService(c *gin.Context) services.FuelService {
	return services.FuelService{DB: conn(c), RequestID: middleware.GetRequestID(c)}
}

// GET /fuel
func (h Handler) Fuel(c *gin.Context) {
	ctx := c.Request.Context()
	f := fuelFilterQuery(c)
	records, err := repositories.FuelRepository{DB: conn(c)}.List(ctx, f)
	if err != nil {
		h.fail(c, err, "/", "fuel", "list")
		return
	}
	vehicles, err := repositories.VehicleRepository{DB: conn(c)}.List(ctx)
	if err != nil {
		h.fail(c, err, "/", "fuel", "list")
		return
	}
	h.render(c, http.StatusOK, "fuel.tmpl", gin.H{
		"Title":    "Fuel",
		"Records":  records,
		"Vehicles": vehicles,
		"Filter":   f,
		"Query":    c.Request.URL.RawQuery,
	})
}

// POST /fuel/add
func (h Handler) CreateFuel(c *gin.Context) {
	var f fuelForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/fuel", "fuel", "create")
		return
	}
	rec := f.model()
	if err := h.fuelService(c).Save(c.Request.Context(), &rec); err != nil {
		h.fail(c, err, "/fuel", "fuel", "create")
		return
	}
	redirect(c, "/fuel", "Fuel record added")
}

// GET /fuel/:id/edit
func (h Handler) EditFuelPage(c *gin.Context) {
	ctx := c.Request.Context()
	rec, err := repositories.FuelRepository{DB: conn(c)}.Get(ctx, idParam(c))
	if err != nil {
		h.fail(c, err, "/fuel", "fuel", "edit")
		return
	}
	vehicles, err := repositories.VehicleRepository{DB: conn(c)}.List(ctx)
	if err != nil {
		h.fail(c, err, "/fuel", "fuel", "edit")
		return
	}
	h.render(c, http.StatusOK, "fuel_edit.tmpl", gin.H{"Title": "Edit fuel record", "Record": rec, "Vehicles": vehicles})
}

// POST /fuel/:id/edit
func (h Handler) UpdateFuel(c *gin.Context) {
	id := idParam(c)
	var f fuelForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/fuel/"+strconv.FormatInt(id, 10)+"/edit", "fuel", "update")
		return
	}
	rec := f.model()
	rec.ID = id
	if err := h.fuelService(c).Save(c.Request.Context(), &rec); err != nil {
		h.fail(c, err, "/fuel", "fuel", "update")
		return
	}
	redirect(c, "/fuel", "Fuel record updated")
}

// POST /fuel/:id/delete
func (h Handler) DeleteFuel(c *gin.Context) {
	if err := h.fuelService(c).Delete(c.Request.Context(), idParam(c)); err != nil {
		h.fail(c, err, "/fuel", "fuel", "delete")
		return
	}
	redirect(c, "/fuel", "Fuel record deleted")
}

// GET /fuel/report
func (h Handler) FuelReport(c *gin.Context) {
	rep, err := h.fuelService(c).Report(c.Request.Context(), fuelFilterQuery(c))
	if err != nil {
		h.fail(c, err, "/fuel", "fuel", "report")
		return
	}
	h.render(c, http.StatusOK, "fuel_report.tmpl", gin.H{
		"Title":  "Fuel report",
		"Report": rep,
		"Query":  c.Request.URL.RawQuery,
	})
}

// importUpload runs the fuel import on the uploaded "file" field.
func (h Handler) importUpload(c *gin.Context) (services.ImportReport, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return services.ImportReport{}, domain.ValidationError{Field: "file", Msg: "choose a CSV or XLSX file", Err: err}
	}
	src, err := fh.Open()
	if err != nil {
		return services.ImportReport{}, err
	}
	defer src.Close()
	return h.fuelService(c).Import(c.Request.Context(), fh.Filename, src)
}

// GET /fuel/import
func (h Handler) FuelImportPage(c *gin.Context) {
	h.render(c, http.StatusOK, "fuel_import.tmpl", gin.H{"Title": "Import fuel records"})
}

// POST /fuel/import
func (h Handler) ImportFuel(c *gin.Context) {
	rep, err := h.importUpload(c)
	if err != nil {
		h.fail(c, err, "/fuel/import", "fuel", "import")
		return
	}
	h.render(c, http.StatusOK, "fuel_import.tmpl", gin.H{"Title": "Import fuel records", "Report": rep})
}
