package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
)

// ===================== Request DTOs =====================

// InitMaterialRequest represents a request to initialize a material
type InitMaterialRequest struct {
	MaterialCode string          `json:"material_code" binding:"required,min=1,max=50"`
	MaterialName string          `json:"material_name" binding:"required,min=1,max=200"`
	Spec         string          `json:"spec" binding:"max=200"`
	Unit         string          `json:"unit" binding:"required,min=1,max=20"`
	Category     string          `json:"category" binding:"max=100"`
	Supplier     string          `json:"supplier" binding:"max=200"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinStock     int64           `json:"min_stock" binding:"gte=0"`
	MaxStock     int64           `json:"max_stock" binding:"gte=0"`
	InitialStock int64           `json:"initial_stock" binding:"gte=0"`
}

// UpdateMaterialRequest represents a request to update material master data
type UpdateMaterialRequest struct {
	MaterialName string          `json:"material_name" binding:"required,min=1,max=200"`
	Spec         string          `json:"spec" binding:"max=200"`
	Unit         string          `json:"unit" binding:"required,min=1,max=20"`
	Category     string          `json:"category" binding:"max=100"`
	Supplier     string          `json:"supplier" binding:"max=200"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinStock     int64           `json:"min_stock" binding:"gte=0"`
	MaxStock     int64           `json:"max_stock" binding:"gte=0"`
}

// MaterialListFilter represents filter options for the material list
type MaterialListFilter struct {
	Search      string                    `form:"search"`
	Category    string                    `form:"category"`
	Supplier    string                    `form:"supplier"`
	Status      *inventory.MaterialStatus `form:"status" binding:"omitempty,oneof=active inactive"`
	StockStatus *inventory.StockStatus    `form:"stock_status" binding:"omitempty,oneof=low high normal"`
	Page        int                       `form:"page"`
	PageSize    int                       `form:"page_size"`
	OrderBy     string                    `form:"order_by"`
	OrderDir    string                    `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// MaterialResponse represents a material in API responses
type MaterialResponse struct {
	ID           int64           `json:"id"`
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	Spec         string          `json:"spec,omitempty"`
	Unit         string          `json:"unit"`
	Category     string          `json:"category,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     int64           `json:"max_stock"`
	CurrentStock int64           `json:"current_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
	StockStatus  string          `json:"stock_status"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToMaterialResponse converts a material to its response DTO
func ToMaterialResponse(m *inventory.Material) MaterialResponse {
	return MaterialResponse{
		ID:           m.ID,
		MaterialCode: m.MaterialCode,
		MaterialName: m.MaterialName,
		Spec:         m.Spec,
		Unit:         m.Unit,
		Category:     m.Category,
		Supplier:     m.Supplier,
		UnitPrice:    m.UnitPrice,
		MinStock:     m.MinStock,
		MaxStock:     m.MaxStock,
		CurrentStock: m.CurrentStock,
		StockValue:   m.StockValue,
		StockStatus:  string(m.StockStatus()),
		Status:       m.Status.String(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToMaterialResponses converts a slice of materials
func ToMaterialResponses(materials []inventory.Material) []MaterialResponse {
	responses := make([]MaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, ToMaterialResponse(&materials[i]))
	}
	return responses
}
