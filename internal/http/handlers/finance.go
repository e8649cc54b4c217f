package handlers

import (
	"net/http"
	"strconv"

	"fleetlog/internal/http/middleware"
	"fleetlog/internal/repositories"
	"fleetlog/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) financeService(c *gin.Context) services.FinanceService {
	return services.FinanceService{DB: conn(c), RequestID: middleware.GetRequestID(c)}
}

// GET /finance
func (h Handler) Finance(c *gin.Context) {
	f := financeFilterQuery(c)
	list, err := repositories.FinanceRepository{DB: conn(c)}.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "/", "finance", "list")
		return
	}
	h.render(c, http.StatusOK, "finance.tmpl", gin.H{
		"Title":        "Finance",
		"Transactions": list,
		"Filter":       f,
		"Query":        c.Request.URL.RawQuery,
	})
}

// POST /finance/add
func (h Handler) CreateFinance(c *gin.Context) {
	var f financeForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, "/finance", "finance", "create")
		return
	}
	t := f.model()
	if err := h.financeService(c).Save(c.Request.Context(), &t); err != nil {
		h.fail(c, err, "/finance", "finance", "create")
		return
	}
	redirect(c, "/finance", "Transaction added")
}

// GET /finance/:id/edit
func (h Handler) EditFinancePage(c *gin.Context) {
	t, err := repositories.FinanceRepository{DB: conn(c)}.Get(c.Request.Context(), idParam(c))
	if err != nil {
		h.fail(c, err, "/finance", "finance", "edit")
		return
	}
	h.render(c, http.StatusOK, "finance_edit.tmpl", gin.H{"Title": "Edit transaction", "Transaction": t})
}

// POST /finance/:id/edit
func (h Handler) UpdateFinance(c *gin.Context) {
	id := idParam(c)
	editURL := "/finance/" + strconv.FormatInt(id, 10) + "/edit"
	var f financeForm
	if err := bindForm(c, &f); err != nil {
		h.fail(c, err, editURL, "finance", "update")
		return
	}
	t := f.model()
	t.ID = id
	if err := h.financeService(c).Save(c.Request.Context(), &t); err != nil {
		h.fail(c, err, "/finance", "finance", "update")
		return
	}
	redirect(c, "/finance", "Transaction updated")
}

// POST /finance/:id/delete
func (h Handler) DeleteFinance(c *gin.Context) {
	if err := h.financeService(c).Delete(c.Request.Context(), idParam(c)); err != nil {
		h.fail(c, err, "/finance", "finance", "delete")
		return
	}
	redirect(c, "/finance", "Transaction deleted")
}

// GET /finance/report
func (h Handler) FinanceReport(c *gin.Context) {
	rep, err := h.financeService(c).Report(c.Request.Context(), financeFilterQuery(c))
	if err != nil {
		h.fail(c, err, "/finance", "finance", "report")
		return
	}
	h.render(c, http.StatusOK, "finance_report.tmpl", gin.H{
		"Title":  "Finance report",
		"Report": rep,
		"Query":  c.Request.URL.RawQuery,
	})
}
