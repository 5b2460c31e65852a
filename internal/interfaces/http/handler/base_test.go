package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.Handle(method, path, handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	var h BaseHandler

	w := performRequest(func(c *gin.Context) {
		h.Success(c, gin.H{"key": "value"})
	}, http.MethodGet, "/test")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestBaseHandlerPage(t *testing.T) {
	var h BaseHandler

	w := performRequest(func(c *gin.Context) {
		h.Page(c, []string{"a"}, 7, 1, 20)
	}, http.MethodGet, "/test")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Total    int64    `json:"total"`
			Page     int      `json:"page"`
			PageSize int      `json:"page_size"`
			List     []string `json:"list"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Equal(t, 20, resp.Data.PageSize)
	assert.Equal(t, []string{"a"}, resp.Data.List)
}

func TestBaseHandlerHandleError(t *testing.T) {
	var h BaseHandler

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound},
		{"validation", shared.NewValidationError("bad input"), http.StatusBadRequest},
		{"invalid state", shared.ErrInvalidState, http.StatusConflict},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusConflict},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(func(c *gin.Context) {
				h.HandleError(c, tt.err)
			}, http.MethodGet, "/test")

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestBaseHandlerHandleErrorWrapped(t *testing.T) {
	var h BaseHandler

	wrapped := errors.Join(errors.New("context"), shared.ErrNotFound)
	w := performRequest(func(c *gin.Context) {
		h.HandleError(c, wrapped)
	}, http.MethodGet, "/test")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBaseHandlerHandleErrorHidesInternalDetail(t *testing.T) {
	var h BaseHandler

	w := performRequest(func(c *gin.Context) {
		h.HandleError(c, errors.New("pq: connection refused"))
	}, http.MethodGet, "/test")

	resp := decodeResponse(t, w)
	assert.NotContains(t, resp.Message, "pq:")
}

func TestParseIDParam(t *testing.T) {
	engine := gin.New()
	var gotID int64
	var gotErr error
	engine.GET("/items/:id/", func(c *gin.Context) {
		gotID, gotErr = parseIDParam(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42/", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), gotID)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/abc/", nil))
	assert.Error(t, gotErr)
}
