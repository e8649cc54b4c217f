package handlers

import (
	"net/http"
	"sync"
	"time"

	intconfig "fleetlog/internal/config"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/services"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/endpoints.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// GET /api/health
func (h Handler) Health(c *gin.Context) {
	if err := intconfig.CheckDB(c.Request.Context(), h.DB); err != nil {
		utils.LogError(middleware.GetRequestID(c), "system", "health", err)
		RespondError(c, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": utils.FormatDateTime(time.Now())})
}

// GET /api/endpoints
func Endpoints(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		RespondError(c, http.StatusServiceUnavailable, "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// GET /
func (h Handler) Dashboard(c *gin.Context) {
	counts, err := services.Dashboard(c.Request.Context(), conn(c))
	if err != nil {
		h.fail(c, err, "/", "dashboard", "counts")
		return
	}
	h.render(c, http.StatusOK, "dashboard.tmpl", gin.H{"Title": "Dashboard", "Counts": counts})
}
