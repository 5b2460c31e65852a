package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// CountHandler handles stock count task endpoints
type CountHandler struct {
	BaseHandler
	countService *inventoryapp.CountService
}

// NewCountHandler creates a new CountHandler
func NewCountHandler(countService *inventoryapp.CountService) *CountHandler {
	return &CountHandler{countService: countService}
}

// RegisterRoutes registers stock count routes
func (h *CountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/stock-count")

	tasks := group.Group("/tasks")
	{
		tasks.GET("/", middleware.RequirePermission(identity.PermCountRead), h.List)
		tasks.GET("/:id/", middleware.RequirePermission(identity.PermCountRead), h.GetByID)
		tasks.POST("/create/", middleware.RequirePermission(identity.PermCountWrite), h.Create)
		tasks.POST("/:id/complete/", middleware.RequirePermission(identity.PermCountWrite), h.Complete)
		tasks.POST("/:id/cancel/", middleware.RequirePermission(identity.PermCountWrite), h.Cancel)
	}

	group.POST("/items/submit/", middleware.RequirePermission(identity.PermCountWrite), h.SubmitItem)
}

// Create opens a new count task snapshotting all active materials
func (h *CountHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateCountTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.countService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a page of count tasks
func (h *CountHandler) List(c *gin.Context) {
	var filter inventoryapp.CountTaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	tasks, total, err := h.countService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Page(c, tasks, total, filter.Page, filter.PageSize)
}

// GetByID returns a count task with its items
func (h *CountHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	result, err := h.countService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitItem records the counted quantity for one item
func (h *CountHandler) SubmitItem(c *gin.Context) {
	var req inventoryapp.SubmitCountItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.countService.SubmitItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Complete finalizes a count task, generating adjustment movements for
// every counted difference
func (h *CountHandler) Complete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	result, err := h.countService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel aborts a count task without adjusting stock
func (h *CountHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	// Cancellation reason is optional, so an empty body is accepted
	var req inventoryapp.CancelCountTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}

	if err := h.countService.Cancel(c.Request.Context(), id, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}
