package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// WarningHandler handles stock warning endpoints
type WarningHandler struct {
	BaseHandler
	warningService *inventoryapp.WarningService
}

// NewWarningHandler creates a new WarningHandler
func NewWarningHandler(warningService *inventoryapp.WarningService) *WarningHandler {
	return &WarningHandler{warningService: warningService}
}

// RegisterRoutes registers warning routes
func (h *WarningHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warnings := rg.Group("/warnings")
	{
		warnings.GET("/", middleware.RequirePermission(identity.PermWarningsRead), h.List)
		warnings.GET("/statistics/", middleware.RequirePermission(identity.PermWarningsRead), h.Statistics)
		warnings.POST("/check/", middleware.RequirePermission(identity.PermWarningsCheck), h.Check)
	}
}

// List returns a page of warnings
func (h *WarningHandler) List(c *gin.Context) {
	var filter inventoryapp.WarningListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	warnings, total, err := h.warningService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Page(c, warnings, total, filter.Page, filter.PageSize)
}

// Statistics returns warning counts by type, level and status
func (h *WarningHandler) Statistics(c *gin.Context) {
	result, err := h.warningService.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Check sweeps all active materials, raising and resolving warnings
func (h *WarningHandler) Check(c *gin.Context) {
	result, err := h.warningService.Check(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
