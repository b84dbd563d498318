package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vijayaelectrics/repair-shop-api/internal/service"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
	"github.com/vijayaelectrics/repair-shop-api/pkg/response"
)

// ExportHandler serves rendered job card documents.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs a new ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// JobCardPDF godoc
// @Summary Download the job card PDF for a job
// @Tags Exports
// @Produce application/pdf
// @Param jobNo path int true "Job number"
// @Success 200 {file} binary
// @Router /jobs/{jobNo}/pdf [get]
func (h *ExportHandler) JobCardPDF(c *gin.Context) {
	jobNumber, err := strconv.Atoi(c.Param("jobNo"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "job number must be numeric"))
		return
	}

	doc, err := h.exports.JobCardPDF(c.Request.Context(), jobNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	if doc.DownloadToken != "" {
		c.Header("X-Download-Token", doc.DownloadToken)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// Download godoc
// @Summary Fetch a previously rendered document via a signed token
// @Tags Exports
// @Produce application/pdf
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /downloads [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	file, relPath, err := h.exports.OpenSigned(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(relPath)))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", file, nil)
}

// JobsCSV godoc
// @Summary Export the full job ledger as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} binary
// @Router /jobs/export/csv [get]
func (h *ExportHandler) JobsCSV(c *gin.Context) {
	data, err := h.exports.JobsCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="jobs.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
