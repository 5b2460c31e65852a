package dto

import "net/http"

// Response is the uniform API envelope. Code mirrors the HTTP status
// carried on the wire so clients can rely on either.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageData is the payload shape of list endpoints
type PageData struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	List     interface{} `json:"list"`
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	}
}

// NewPageResponse creates a success envelope wrapping a page of results.
// Page and pageSize are echoed back with the same defaults the query layer
// applies, so unset request values do not surface as zeroes.
func NewPageResponse(list interface{}, total int64, page, pageSize int) Response {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return NewSuccessResponse(PageData{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		List:     list,
	})
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(code int, message string) Response {
	return Response{
		Code:    code,
		Message: message,
	}
}
