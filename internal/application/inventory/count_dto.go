package inventory

import (
	"time"

	"github.com/wims/backend/internal/domain/inventory"
)

// ===================== Request DTOs =====================

// CreateCountTaskRequest represents a request to create a count task
type CreateCountTaskRequest struct {
	CreatedBy string `json:"created_by" binding:"required,min=1,max=100"`
	Remark    string `json:"remark" binding:"max=500"`
}

// SubmitCountItemRequest represents a request to record a counted quantity
type SubmitCountItemRequest struct {
	ItemID   int64  `json:"item_id" binding:"required"`
	RealQty  *int64 `json:"real_qty" binding:"required,gte=0"`
	Operator string `json:"operator" binding:"max=100"`
	Remark   string `json:"remark" binding:"max=500"`
}

// CancelCountTaskRequest represents a request to cancel a count task
type CancelCountTaskRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// CountTaskListFilter represents filter options for the count task list
type CountTaskListFilter struct {
	Status   *inventory.CountTaskStatus `form:"status" binding:"omitempty,oneof=pending doing done cancelled"`
	Page     int                        `form:"page"`
	PageSize int                        `form:"page_size"`
}

// ===================== Response DTOs =====================

// CountItemResponse represents a count item in API responses
type CountItemResponse struct {
	ID           int64      `json:"id"`
	TaskID       int64      `json:"task_id"`
	MaterialID   int64      `json:"material_id"`
	MaterialCode string     `json:"material_code"`
	MaterialName string     `json:"material_name"`
	Spec         string     `json:"spec"`
	Unit         string     `json:"unit"`
	BookQty      int64      `json:"book_qty"`
	RealQty      *int64     `json:"real_qty"`
	DiffQty      *int64     `json:"diff_qty"`
	DiffType     string     `json:"diff_type,omitempty"`
	Operator     string     `json:"operator,omitempty"`
	Remark       string     `json:"remark,omitempty"`
	OperatedAt   *time.Time `json:"operated_at,omitempty"`
}

// CountTaskResponse represents a count task with its items
type CountTaskResponse struct {
	ID           int64               `json:"id"`
	TaskNo       string              `json:"task_no"`
	Status       string              `json:"status"`
	CreatedBy    string              `json:"created_by"`
	Remark       string              `json:"remark,omitempty"`
	ItemCount    int                 `json:"item_count"`
	CountedCount int                 `json:"counted_count"`
	CreatedAt    time.Time           `json:"created_at"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	Items        []CountItemResponse `json:"items,omitempty"`
}

// CountTaskListResponse represents a count task row in list views
type CountTaskListResponse struct {
	ID           int64      `json:"id"`
	TaskNo       string     `json:"task_no"`
	Status       string     `json:"status"`
	CreatedBy    string     `json:"created_by"`
	Remark       string     `json:"remark,omitempty"`
	ItemCount    int        `json:"item_count"`
	CountedCount int        `json:"counted_count"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// AdjustRecord is one generated adjustment in a completion result
type AdjustRecord struct {
	MaterialCode string `json:"material_code"`
	DiffType     string `json:"diff_type"`
	Qty          int64  `json:"qty"`
	BillNo       string `json:"bill_no"`
}

// CompleteCountTaskResult is the payload returned by task completion
type CompleteCountTaskResult struct {
	TaskNo        string         `json:"task_no"`
	AdjustCount   int            `json:"adjust_count"`
	AdjustRecords []AdjustRecord `json:"adjust_records"`
}

// ===================== Converters =====================

// ToCountItemResponse converts a count item to its response DTO
func ToCountItemResponse(item *inventory.CountItem) CountItemResponse {
	resp := CountItemResponse{
		ID:           item.ID,
		TaskID:       item.TaskID,
		MaterialID:   item.MaterialID,
		MaterialCode: item.MaterialCode,
		MaterialName: item.MaterialName,
		Spec:         item.Spec,
		Unit:         item.Unit,
		BookQty:      item.BookQty,
		RealQty:      item.RealQty,
		Operator:     item.Operator,
		Remark:       item.Remark,
		OperatedAt:   item.OperatedAt,
	}
	if item.Counted() {
		diff := item.DiffQty
		resp.DiffQty = &diff
		resp.DiffType = item.DiffType.String()
	}
	return resp
}

// ToCountTaskResponse converts a count task to its response DTO
func ToCountTaskResponse(t *inventory.CountTask) CountTaskResponse {
	items := make([]CountItemResponse, 0, len(t.Items))
	for i := range t.Items {
		items = append(items, ToCountItemResponse(&t.Items[i]))
	}
	return CountTaskResponse{
		ID:           t.ID,
		TaskNo:       t.TaskNo,
		Status:       t.Status.String(),
		CreatedBy:    t.CreatedBy,
		Remark:       t.Remark,
		ItemCount:    t.ItemCount(),
		CountedCount: t.CountedCount(),
		CreatedAt:    t.CreatedAt,
		CompletedAt:  t.CompletedAt,
		Items:        items,
	}
}

// ToCountTaskListResponse converts a count task to its list row DTO.
// Item counts come from a separate aggregate query since list rows are
// loaded without items.
func ToCountTaskListResponse(t *inventory.CountTask, counts inventory.ItemCountSummary) CountTaskListResponse {
	return CountTaskListResponse{
		ID:           t.ID,
		TaskNo:       t.TaskNo,
		Status:       t.Status.String(),
		CreatedBy:    t.CreatedBy,
		Remark:       t.Remark,
		ItemCount:    counts.ItemCount,
		CountedCount: counts.CountedCount,
		CreatedAt:    t.CreatedAt,
		CompletedAt:  t.CompletedAt,
	}
}
