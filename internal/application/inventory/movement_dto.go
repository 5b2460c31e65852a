package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
)

// ===================== Request DTOs =====================

// CreateMovementRequest represents a request to record a stock-in or
// stock-out. When value is omitted it defaults to quantity times the
// material's unit price.
type CreateMovementRequest struct {
	MaterialID   int64            `json:"material_id" binding:"required"`
	MovementType string           `json:"movement_type" binding:"required"`
	Quantity     int64            `json:"quantity" binding:"required,gt=0"`
	Value        *decimal.Decimal `json:"value"`
	Operator     string           `json:"operator" binding:"max=100"`
	Remark       string           `json:"remark" binding:"max=500"`
	OccurredAt   *time.Time       `json:"occurred_at"`
}

// AmendMovementRequest represents a request to correct a movement
type AmendMovementRequest struct {
	Quantity int64            `json:"quantity" binding:"required,gt=0"`
	Value    *decimal.Decimal `json:"value"`
	Remark   string           `json:"remark" binding:"max=500"`
}

// MovementListFilter represents filter options for the movement list
type MovementListFilter struct {
	Search       string     `form:"search"`
	MovementType string     `form:"movement_type"`
	BillNo       string     `form:"bill_no"`
	Operator     string     `form:"operator"`
	StartTime    *time.Time `form:"start_time"`
	EndTime      *time.Time `form:"end_time"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
}

// ===================== Response DTOs =====================

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID           int64           `json:"id"`
	BillNo       string          `json:"bill_no"`
	Direction    string          `json:"direction"`
	MovementType string          `json:"movement_type"`
	MaterialID   int64           `json:"material_id"`
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	Spec         string          `json:"spec,omitempty"`
	Unit         string          `json:"unit"`
	Quantity     int64           `json:"quantity"`
	Value        decimal.Decimal `json:"value"`
	Operator     string          `json:"operator,omitempty"`
	Remark       string          `json:"remark,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToMovementResponse converts a movement to its response DTO
func ToMovementResponse(sm *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           sm.ID,
		BillNo:       sm.BillNo,
		Direction:    sm.Direction.String(),
		MovementType: sm.MovementType.String(),
		MaterialID:   sm.MaterialID,
		MaterialCode: sm.MaterialCode,
		MaterialName: sm.MaterialName,
		Spec:         sm.Spec,
		Unit:         sm.Unit,
		Quantity:     sm.Quantity,
		Value:        sm.Value,
		Operator:     sm.Operator,
		Remark:       sm.Remark,
		OccurredAt:   sm.OccurredAt,
		Status:       string(sm.Status),
		CreatedAt:    sm.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	return responses
}
