package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vlxsoft/materials-api/internal/application/service"
	"github.com/vlxsoft/materials-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportRange reads from/to query parameters, defaulting to the last 30 days
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -29)
	to := now

	parsedFrom, ok := GetDateQuery(c, "from")
	if !ok {
		response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return from, to, false
	}
	if parsedFrom != nil {
		from = *parsedFrom
	}

	parsedTo, ok := GetDateQuery(c, "to")
	if !ok {
		response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return from, to, false
	}
	if parsedTo != nil {
		to = *parsedTo
	}

	return from, to, true
}

// Daily handles the day-by-day revenue/cost series
func (h *ReportHandler) Daily(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.DailySeries(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// ProjectProfit handles the per-project profitability report
func (h *ReportHandler) ProjectProfit(c *gin.Context) {
	from, to, ok := reportRange(c)
	if !ok {
		return
	}

	projectID, ok := GetUUIDQuery(c, "project_id")
	if !ok {
		response.BadRequest(c, "Invalid project ID")
		return
	}

	rows, err := h.reportService.ProjectProfit(c.Request.Context(), from, to, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project profit report retrieved successfully", rows)
}

// Dashboard handles the landing-page snapshot
func (h *ReportHandler) Dashboard(c *gin.Context) {
	snapshot, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", snapshot)
}
