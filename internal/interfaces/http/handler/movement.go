package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// MovementHandler handles stock-in and stock-out endpoints. One
// handler serves both directions; the route group fixes the direction.
type MovementHandler struct {
	BaseHandler
	movementService *inventoryapp.MovementService
	direction       inventory.MovementDirection
	prefix          string
}

// NewStockInHandler creates a handler for inbound movements
func NewStockInHandler(movementService *inventoryapp.MovementService) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
		direction:       inventory.MovementDirectionIn,
		prefix:          "/stock-in",
	}
}

// NewStockOutHandler creates a handler for outbound movements
func NewStockOutHandler(movementService *inventoryapp.MovementService) *MovementHandler {
	return &MovementHandler{
		movementService: movementService,
		direction:       inventory.MovementDirectionOut,
		prefix:          "/stock-out",
	}
}

// RegisterRoutes registers movement routes under the direction prefix
func (h *MovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(h.prefix)
	{
		group.GET("/", middleware.RequirePermission(identity.PermStocksRead), h.List)
		group.GET("/:id/", middleware.RequirePermission(identity.PermStocksRead), h.GetByID)
		group.POST("/create/", middleware.RequirePermission(identity.PermStocksWrite), h.Create)
		group.POST("/:id/update/", middleware.RequirePermission(identity.PermStocksWrite), h.Amend)
		group.POST("/:id/delete/", middleware.RequirePermission(identity.PermStocksWrite), h.Void)
	}
}

// Create records a movement and applies its stock delta
func (h *MovementHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.movementService.Create(c.Request.Context(), h.direction, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a page of movements in this direction
func (h *MovementHandler) List(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	movements, total, err := h.movementService.List(c.Request.Context(), h.direction, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Page(c, movements, total, filter.Page, filter.PageSize)
}

// GetByID returns a single movement
func (h *MovementHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	result, err := h.movementService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Amend corrects a movement's quantity and value, re-applying the
// stock difference
func (h *MovementHandler) Amend(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	var req inventoryapp.AmendMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.movementService.Amend(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Void marks a movement as voided and reverses its stock effect
func (h *MovementHandler) Void(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	if err := h.movementService.Void(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}
