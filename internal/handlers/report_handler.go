package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/services"
	"github.com/campus-track/attendance-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	reports services.ReportService
	exports services.ExportService
}

func NewReportHandler(reports services.ReportService, exports services.ExportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		reports:     reports,
		exports:     exports,
	}
}

// Home returns the teacher dashboard snapshot
// @Summary Home stats
// @Tags reports
// @Produce json
// @Success 200 {object} services.HomeStats
// @Router /home [get]
func (h *ReportHandler) Home(c *gin.Context) {
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Getting home stats", "department", principal.Department)

	stats, err := h.reports.HomeStats(c.Request.Context(), principal.Department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Summary returns per-student totals with categories and the low list
// @Summary Attendance summary
// @Tags reports
// @Produce json
// @Success 200 {object} services.SummaryReport
// @Router /attendance/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Getting attendance summary", "department", principal.Department)

	report, err := h.reports.Summary(c.Request.Context(), principal.Department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ByDate returns every department student's status on one date
// @Summary Attendance by date
// @Tags reports
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} services.DayReport
// @Router /attendance/by-date [get]
func (h *ReportHandler) ByDate(c *gin.Context) {
	principal := PrincipalFromContext(c)

	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "date must be a calendar date (YYYY-MM-DD)"})
		return
	}

	h.LogRequest(c, "Getting attendance by date", "date", date)

	report, err := h.reports.ByDate(c.Request.Context(), principal.Department, date)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportSummary streams the summary as an xlsx attachment
// @Summary Export attendance summary
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /attendance/summary/export [get]
func (h *ReportHandler) ExportSummary(c *gin.Context) {
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Exporting attendance summary", "department", principal.Department)

	file, err := h.exports.SummaryXLSX(c.Request.Context(), principal.Department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
