package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	intdb "fleetlog/internal/db"
	"fleetlog/internal/domain"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /vehicles
func (h Handler) Vehicles(c *gin.Context) {
	list, err := repositories.VehicleRepository{DB: conn(c)}.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "/", "vehicles", "list")
		return
	}
	h.render(c, http.StatusOK, "vehicles.tmpl", gin.H{"Title": "Vehicles", "Vehicles": list})
}

// POST /vehicles/add
func (h Handler) CreateVehicle(c *gin.Context) {
	var f vehicleForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "create")
		return
	}
	v := f.model()
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.VehicleRepository{DB: tx}.Create(ctx, &v)
	})
	if err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "create")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "vehicles", "create", "vehicle created",
		zap.Int64("id", v.ID), zap.String("plate", v.LicensePlate))
	redirect(c, "/vehicles", "Vehicle added")
}

// GET /vehicles/:id/edit
func (h Handler) EditVehiclePage(c *gin.Context) {
	v, err := repositories.VehicleRepository{DB: conn(c)}.Get(c.Request.Context(), idParam(c))
	if err == nil && v.Status != domain.StatusActive {
		err = domain.NotFoundError{Resource: "vehicle", ID: v.ID}
	}
	if err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "edit")
		return
	}
	h.render(c, http.StatusOK, "vehicle_edit.tmpl", gin.H{"Title": "Edit vehicle", "Vehicle": v})
}

// POST /vehicles/:id/edit
func (h Handler) UpdateVehicle(c *gin.Context) {
	id := idParam(c)
	back := "/vehicles/" + strconv.FormatInt(id, 10) + "/edit"
	var f vehicleForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, back, "vehicles", "update")
		return
	}
	v := f.model()
	v.ID = id
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.VehicleRepository{DB: tx}.Update(ctx, v)
	})
	if err != nil {
		if domain.IsConflict(err) {
			h.fail(c, err, back, "vehicles", "update")
			return
		}
		h.fail(c, err, "/vehicles", "vehicles", "update")
		return
	}
	redirect(c, "/vehicles", "Vehicle updated")
}

// POST /vehicles/:id/delete
func (h Handler) DeleteVehicle(c *gin.Context) {
	id := idParam(c)
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.VehicleRepository{DB: tx}.SoftDelete(ctx, id)
	})
	if err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "delete")
		return
	}
	redirect(c, "/vehicles", "Vehicle removed")
}

// POST /vehicles/:id/documents
func (h Handler) UploadVehicleDocuments(c *gin.Context) {
	id := idParam(c)
	ctx := c.Request.Context()

	v, err := repositories.VehicleRepository{DB: conn(c)}.Get(ctx, id)
	if err == nil && v.Status != domain.StatusActive {
		err = domain.NotFoundError{Resource: "vehicle", ID: id}
	}
	if err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "upload")
		return
	}

	names, err := h.saveUploads(c)
	if err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "upload")
		return
	}
	err = intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.VehicleRepository{DB: tx}.SetDocuments(ctx, id, append(v.Documents, names...))
	})
	if err != nil {
		h.fail(c, err, "/vehicles", "vehicles", "upload")
		return
	}
	redirect(c, "/vehicles", strconv.Itoa(len(names))+" document(s) uploaded")
}
