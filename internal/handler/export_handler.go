package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/service"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/response"
)

// ExportHandler exposes report export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Render the day's reports as CSV or PDF
// @Tags exports
// @Security BearerAuth
// @Produce json
// @Param date query string false "date (YYYY-MM-DD), defaults to today"
// @Param group_id query string false "restrict to one group"
// @Param format query string true "csv or pdf"
// @Success 200 {object} response.Envelope{data=dto.ExportResponse}
// @Router /exports/reports [get]
func (h *ExportHandler) Export(c *gin.Context) {
	result, err := h.exports.ExportReports(c.Request.Context(), callerScope(c), c.Query("date"), c.Query("group_id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Stream a previously rendered export
// @Tags exports
// @Produce octet-stream
// @Param token path string true "signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /exports/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, relPath, err := h.exports.OpenDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	name := filepath.Base(relPath)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	contentType := "application/octet-stream"
	switch filepath.Ext(name) {
	case ".csv":
		contentType = "text/csv"
	case ".pdf":
		contentType = "application/pdf"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
