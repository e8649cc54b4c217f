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

// GET /employees
func (h Handler) Employees(c *gin.Context) {
	list, err := repositories.EmployeeRepository{DB: conn(c)}.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "/", "employees", "list")
		return
	}
	h.render(c, http.StatusOK, "employees.tmpl", gin.H{"Title": "Employees", "Employees": list})
}

// POST /employees/add
func (h Handler) CreateEmployee(c *gin.Context) {
	var f employeeForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/employees", "employees", "create")
		return
	}
	e := f.model()
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.EmployeeRepository{DB: tx}.Create(ctx, &e)
	})
	if err != nil {
		h.fail(c, err, "/employees", "employees", "create")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "employees", "create", "employee created", zap.Int64("id", e.ID))
	redirect(c, "/employees", "Employee added")
}

// GET /employees/:id/edit
func (h Handler) EditEmployeePage(c *gin.Context) {
	e, err := repositories.EmployeeRepository{DB: conn(c)}.Get(c.Request.Context(), idParam(c))
	if err == nil && e.Status != domain.StatusActive {
		err = domain.NotFoundError{Resource: "employee", ID: e.ID}
	}
	if err != nil {
		h.fail(c, err, "/employees", "employees", "edit")
		return
	}
	h.render(c, http.StatusOK, "employee_edit.tmpl", gin.H{"Title": "Edit employee", "Employee": e})
}

// POST /employees/:id/edit
func (h Handler) UpdateEmployee(c *gin.Context) {
	id := idParam(c)
	back := "/employees/" + strconv.FormatInt(id, 10) + "/edit"
	var f employeeForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, back, "employees", "update")
		return
	}
	e := f.model()
	e.ID = id
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.EmployeeRepository{DB: tx}.Update(ctx, e)
	})
	if err != nil {
		h.fail(c, err, "/employees", "employees", "update")
		return
	}
	redirect(c, "/employees", "Employee updated")
}

// POST /employees/:id/delete
func (h Handler) DeleteEmployee(c *gin.Context) {
	id := idParam(c)
	ctx := c.Request.Context()
	err := intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.EmployeeRepository{DB: tx}.SoftDelete(ctx, id)
	})
	if err != nil {
		h.fail(c, err, "/employees", "employees", "delete")
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "employees", "delete", "employee deactivated", zap.Int64("id", id))
	redirect(c, "/employees", "Employee removed")
}

// POST /employees/:id/documents
func (h Handler) UploadEmployeeDocuments(c *gin.Context) {
	id := idParam(c)
	ctx := c.Request.Context()
	repo := repositories.EmployeeRepository{DB: conn(c)}

	e, err := repo.Get(ctx, id)
	if err == nil && e.Status != domain.StatusActive {
		err = domain.NotFoundError{Resource: "employee", ID: id}
	}
	if err != nil {
		h.fail(c, err, "/employees", "employees", "upload")
		return
	}

	names, err := h.saveUploads(c)
	if err != nil {
		h.fail(c, err, "/employees", "employees", "upload")
		return
	}
	err = intdb.WithTx(ctx, conn(c), func(tx *sql.Tx) error {
		return repositories.EmployeeRepository{DB: tx}.SetDocuments(ctx, id, append(e.Documents, names...))
	})
	if err != nil {
		h.fail(c, err, "/employees", "employees", "upload")
		return
	}
	redirect(c, "/employees", strconv.Itoa(len(names))+" document(s) uploaded")
}
