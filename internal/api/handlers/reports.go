package handlers

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ReportHandler handles HTTP requests for schedule exports
type ReportHandler struct {
	exportService service.ExportServiceInterface
	reportService service.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(exportService service.ExportServiceInterface, reportService service.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		exportService: exportService,
		reportService: reportService,
	}
}

// ExportExcel handles GET /api/v1/reports/excel
// @Summary Export the schedule as a spreadsheet
// @Description Download presentations in the optional date range as an xlsx workbook
// @Tags reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary "Spreadsheet attachment"
// @Failure 400 {object} ErrorResponse "Malformed date filter"
// @Failure 422 {object} ErrorResponse "Inverted date range or no data to export"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/reports/excel [get]
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	buf, filename, err := h.exportService.ExportExcel(c.Request.Context(), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		h.respondExportError(c, err, "Failed to build spreadsheet")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportPDF handles GET /api/v1/reports/pdf
// @Summary Export the analytics report as PDF
// @Description Download an aggregated research activity report with charts for the optional date range
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary "PDF attachment"
// @Failure 400 {object} ErrorResponse "Malformed date filter"
// @Failure 422 {object} ErrorResponse "Inverted date range or no data to report"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/reports/pdf [get]
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	buf, filename, err := h.reportService.ExportPDF(c.Request.Context(), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		h.respondExportError(c, err, "Failed to build report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypePDF, buf.Bytes())
}

func (h *ReportHandler) respondExportError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, apperrors.ErrInsufficientData) || errors.Is(err, apperrors.ErrInvalidDateRange) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if apperrors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
