package inventory

import (
	"time"

	"github.com/wims/backend/internal/domain/inventory"
)

// WarningListFilter represents filter options for the warning list
type WarningListFilter struct {
	WarningType *inventory.WarningType   `form:"warning_type" binding:"omitempty,oneof=low high"`
	Level       *inventory.WarningLevel  `form:"level" binding:"omitempty,oneof=warning danger"`
	Status      *inventory.WarningStatus `form:"status" binding:"omitempty,oneof=pending resolved"`
	Page        int                      `form:"page"`
	PageSize    int                      `form:"page_size"`
}

// WarningResponse represents a stock warning in API responses
type WarningResponse struct {
	ID           int64      `json:"id"`
	MaterialID   int64      `json:"material_id"`
	MaterialCode string     `json:"material_code"`
	MaterialName string     `json:"material_name"`
	Unit         string     `json:"unit"`
	WarningType  string     `json:"warning_type"`
	Level        string     `json:"level"`
	CurrentStock int64      `json:"current_stock"`
	MinStock     int64      `json:"min_stock"`
	MaxStock     int64      `json:"max_stock"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// WarningStatisticsResponse aggregates warning counts by type, level and status
type WarningStatisticsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
	Low      int64 `json:"low"`
	High     int64 `json:"high"`
	Warning  int64 `json:"warning"`
	Danger   int64 `json:"danger"`
}

// WarningCheckResult reports the outcome of a warning sweep
type WarningCheckResult struct {
	Checked  int `json:"checked"`
	Raised   int `json:"raised"`
	Resolved int `json:"resolved"`
}

// ToWarningResponse converts a warning to its response DTO
func ToWarningResponse(w *inventory.StockWarning) WarningResponse {
	return WarningResponse{
		ID:           w.ID,
		MaterialID:   w.MaterialID,
		MaterialCode: w.MaterialCode,
		MaterialName: w.MaterialName,
		Unit:         w.Unit,
		WarningType:  w.WarningType.String(),
		Level:        w.Level.String(),
		CurrentStock: w.CurrentStock,
		MinStock:     w.MinStock,
		MaxStock:     w.MaxStock,
		Status:       string(w.Status),
		CreatedAt:    w.CreatedAt,
		ResolvedAt:   w.ResolvedAt,
	}
}
