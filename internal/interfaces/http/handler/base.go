package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common response utilities for handlers
type BaseHandler struct{}

// Success sends a 200 envelope with the given payload
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends a 200 envelope wrapping a page of results
func (h *BaseHandler) Page(c *gin.Context, list any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewPageResponse(list, total, page, pageSize))
}

// BadRequest sends a 400 envelope, typically for binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message))
}

// HandleError translates an error into the appropriate envelope.
// Domain errors carry their own code mapping; anything else is an
// internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.HTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(status, domainErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(http.StatusInternalServerError, "An unexpected error occurred"))
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
