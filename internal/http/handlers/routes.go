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

// GET /routes
func (h Handler) Routes(c *gin.Context) {
	list, err := repositories.RouteRepository{DB: conn(c)}.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "/", "routes", "list")
		return
	}
	h.render(c, http.StatusOK, "routes.tmpl", gin.H{"Title": "Routes", "Routes": list})
}

// POST /routes/add
func (h Handler) CreateRoute(c *gin.Context) {
	var f routeForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/routes", "routes", "create")
		return
	}
	rt := f.model()
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.RouteRepository{DB: tx}.Create(ctx, &rt)
	})
	if err != nil {
		h.fail(c, err, "/routes", "routes", "create")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "routes", "create", "route created",
		zap.Int64("id", rt.ID), zap.String("code", rt.Code), zap.String("category", string(rt.Category)))
	redirect(c, "/routes", "Route added")
}

// GET /routes/:id/edit
func (h Handler) EditRoutePage(c *gin.Context) {
	rt, err := repositories.RouteRepository{DB: conn(c)}.Get(c.Request.Context(), idParam(c))
	if err == nil && !rt.Active() {
		err = domain.NotFoundError{Resource: "route", ID: rt.ID}
	}
	if err != nil {
		h.fail(c, err, "/routes", "routes", "edit")
		return
	}
	h.render(c, http.StatusOK, "route_edit.tmpl", gin.H{"Title": "Edit route", "Route": rt})
}

// POST /routes/:id/edit
func (h Handler) UpdateRoute(c *gin.Context) {
	id := idParam(c)
	var f routeForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/routes/"+strconv.FormatInt(id, 10)+"/edit", "routes", "update")
		return
	}
	rt := f.model()
	rt.ID = id
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.RouteRepository{DB: tx}.Update(ctx, rt)
	})
	if err != nil {
		h.fail(c, err, "/routes", "routes", "update")
		return
	}
	redirect(c, "/routes", "Route updated")
}

// POST /routes/:id/delete
func (h Handler) DeleteRoute(c *gin.Context) {
	id := idParam(c)
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.RouteRepository{DB: tx}.SoftDelete(ctx, id)
	})
	if err != nil {
		h.fail(c, err, "/routes", "routes", "delete")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "routes", "delete", "route deactivated", zap.Int64("id", id))
	redirect(c, "/routes", "Route removed")
}
