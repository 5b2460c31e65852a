package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// MaterialHandler handles material master data endpoints
type MaterialHandler struct {
	BaseHandler
	materialService *inventoryapp.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(materialService *inventoryapp.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// RegisterRoutes registers material routes
func (h *MaterialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stocks := rg.Group("/stocks")
	{
		stocks.GET("/", middleware.RequirePermission(identity.PermStocksRead), h.List)
		stocks.GET("/:id/", middleware.RequirePermission(identity.PermStocksRead), h.GetByID)
		stocks.POST("/init/", middleware.RequirePermission(identity.PermStocksWrite), h.Init)
		stocks.POST("/:id/update/", middleware.RequirePermission(identity.PermStocksWrite), h.Update)
		stocks.POST("/:id/deactivate/", middleware.RequirePermission(identity.PermStocksWrite), h.Deactivate)
		stocks.POST("/:id/activate/", middleware.RequirePermission(identity.PermStocksWrite), h.Activate)
	}
}

// Init registers a material with its opening stock
func (h *MaterialHandler) Init(c *gin.Context) {
	var req inventoryapp.InitMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.materialService.Init(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a page of materials
func (h *MaterialHandler) List(c *gin.Context) {
	var filter inventoryapp.MaterialListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	materials, total, err := h.materialService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Page(c, materials, total, filter.Page, filter.PageSize)
}

// GetByID returns a single material
func (h *MaterialHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material ID")
		return
	}

	result, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update edits material master data
func (h *MaterialHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material ID")
		return
	}

	var req inventoryapp.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.materialService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate retires a material from active use
func (h *MaterialHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material ID")
		return
	}

	if err := h.materialService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}

// Activate restores a deactivated material
func (h *MaterialHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid material ID")
		return
	}

	if err := h.materialService.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}
