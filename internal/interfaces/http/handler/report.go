package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles statistics and report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *inventoryapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *inventoryapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers statistics and report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission(identity.PermReportsRead)

	statistics := rg.Group("/statistics")
	{
		statistics.GET("/overview/", read, h.Overview)
		statistics.GET("/trend/", read, h.Trend)
		statistics.GET("/ranking/", read, h.Ranking)
		statistics.GET("/category/", read, h.Categories)
	}

	rg.GET("/reports/monthly/", read, h.Monthly)
}

// Overview returns headline stock and flow figures
func (h *ReportHandler) Overview(c *gin.Context) {
	result, err := h.reportService.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Trend returns daily in/out flow points for the last N days
func (h *ReportHandler) Trend(c *gin.Context) {
	days := queryInt(c, "days", 30)

	result, err := h.reportService.Trend(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Ranking returns materials ranked by moved quantity over a window
func (h *ReportHandler) Ranking(c *gin.Context) {
	direction := inventory.MovementDirection(c.DefaultQuery("direction", "out"))
	if !direction.IsValid() {
		h.BadRequest(c, "Invalid direction, expected 'in' or 'out'")
		return
	}

	days := queryInt(c, "days", 30)
	limit := queryInt(c, "limit", 10)

	result, err := h.reportService.Ranking(c.Request.Context(), direction, days, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Categories returns stock aggregates grouped by material category
func (h *ReportHandler) Categories(c *gin.Context) {
	result, err := h.reportService.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Monthly returns the monthly report for a "YYYY-MM" month, defaulting
// to the current month
func (h *ReportHandler) Monthly(c *gin.Context) {
	month := c.Query("month")

	result, err := h.reportService.Monthly(c.Request.Context(), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// queryInt parses an integer query parameter, falling back to a
// default on absence or garbage
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
