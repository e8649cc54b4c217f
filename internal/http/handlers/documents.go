package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"fleetlog/internal/domain"
	"fleetlog/internal/http/middleware"
	"fleetlog/internal/storage"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// saveUploads stores every file posted under "files" and returns the
// stored names in upload order.
func (h Handler) saveUploads(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.ValidationError{Field: "files", Msg: "no files uploaded", Err: err}
	}
	files := form.File["files"]
	if len(files) == 0 {
		return nil, domain.ValidationError{Field: "files", Msg: "no files uploaded"}
	}

	ctx := c.Request.Context()
	now := time.Now()
	names := make([]string, 0, len(files))
	for _, fh := range files {
		name := storage.StoredName(now, fh.Filename)
		src, err := fh.Open()
		if err != nil {
			return nil, domain.ValidationError{Field: "files", Msg: "unreadable upload " + fh.Filename, Err: err}
		}
		err = h.Store.Save(ctx, name, src, fh.Size, fh.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return nil, domain.InternalError{Msg: "could not store document", Err: err}
		}
		names = append(names, name)
	}
	utils.LogEvent(middleware.GetRequestID(c), "documents", "upload", "documents stored", zap.Strings("files", names))
	return names, nil
}

// GET /documents/:name
func (h Handler) Document(c *gin.Context) {
	name := c.Param("name")
	rc, err := h.Store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.String(http.StatusNotFound, "document not found")
			return
		}
		utils.LogError(middleware.GetRequestID(c), "documents", "open", err)
		c.String(http.StatusInternalServerError, "could not open document")
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, ct, rc, map[string]string{
		"Content-Disposition": `inline; filename="` + name + `"`,
	})
}
