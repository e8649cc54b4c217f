package handlers

import (
	"database/sql"
	"net/http"
	"net/url"
	"strings"

	intconfig "fleetlog/internal/config"
	"fleetlog/internal/domain"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/storage"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler carries the process-wide dependencies. Per-request state (the
// database connection, the request id) is read from the gin context.
type Handler struct {
	DB    *sql.DB
	Store storage.FileStore
	Env   intconfig.Env
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// conn is the request-scoped connection. It panics when DBSession is not
// mounted, which is a wiring bug.
func conn(c *gin.Context) *sql.Conn {
	cn := middleware.GetConn(c)
	if cn == nil {
		panic("handlers: no db session on request")
	}
	return cn
}

// render adds the fields every page layout reads.
func (h Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Msg"] = c.Query("msg")
	data["Error"] = c.Query("error")
	data["Path"] = c.Request.URL.Path
	data["Today"] = utils.Today()
	data["AuthEnabled"] = h.Env.AuthEnabled()
	if u, ok := middleware.CurrentUser(c); ok {
		data["User"] = u
	}
	c.HTML(status, name, data)
}

// redirect sends a 303 to target with an optional flash message.
func redirect(c *gin.Context, target, msg string) {
	if msg != "" {
		target = withQuery(target, "msg", msg)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func withQuery(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + key + "=" + url.QueryEscape(value)
}

// fail handles an error on a page route: missing records and bad input go
// back to the listing, anything else renders the error page.
func (h Handler) fail(c *gin.Context, err error, listing, module, action string) {
	switch {
	case domain.IsNotFound(err), domain.IsValidation(err), domain.IsConflict(err):
		c.Redirect(http.StatusSeeOther, withQuery(listing, "error", err.Error()))
	default:
		utils.LogError(middleware.GetRequestID(c), module, action, err)
		_ = c.Error(err)
		h.render(c, http.StatusInternalServerError, "error.tmpl", gin.H{
			"Title":     "Something went wrong",
			"Message":   "The operation could not be completed. Nothing was saved.",
			"RequestID": middleware.GetRequestID(c),
			"Back":      listing,
		})
	}
}

func idParam(c *gin.Context) int64 {
	return utils.ParseID(c.Param("id"))
}
