package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// MaterialStatus represents the lifecycle status of a material
type MaterialStatus string

const (
	MaterialStatusActive   MaterialStatus = "active"
	MaterialStatusInactive MaterialStatus = "inactive"
)

// IsValid checks if the status is a valid MaterialStatus
func (s MaterialStatus) IsValid() bool {
	return s == MaterialStatusActive || s == MaterialStatusInactive
}

// String returns the string representation of MaterialStatus
func (s MaterialStatus) String() string {
	return string(s)
}

// StockStatus classifies a material's stock level against its thresholds
type StockStatus string

const (
	StockStatusLow    StockStatus = "low"
	StockStatusHigh   StockStatus = "high"
	StockStatusNormal StockStatus = "normal"
)

// Material is the aggregate root of the material ledger. It carries the
// master data for one material together with its live stock quantity,
// valuation and warning thresholds.
type Material struct {
	shared.BaseAggregateRoot
	MaterialCode string
	MaterialName string
	Spec         string
	Unit         string
	Category     string
	Supplier     string
	UnitPrice    decimal.Decimal
	MinStock     int64
	MaxStock     int64
	CurrentStock int64
	StockValue   decimal.Decimal
	Status       MaterialStatus
}

// NewMaterial creates a new material with an initial stock quantity.
// The initial stock value is quantity times unit price.
func NewMaterial(code, name, spec, unit, category, supplier string, unitPrice decimal.Decimal, minStock, maxStock, initialStock int64) (*Material, error) {
	if code == "" {
		return nil, shared.NewValidationError("Material code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("Material name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewValidationError("Material unit cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}
	if minStock < 0 || maxStock < 0 {
		return nil, shared.NewValidationError("Stock thresholds cannot be negative")
	}
	if minStock > 0 && maxStock > 0 && minStock >= maxStock {
		return nil, shared.NewValidationError("Minimum stock must be below maximum stock")
	}
	if initialStock < 0 {
		return nil, shared.NewValidationError("Initial stock cannot be negative")
	}

	m := &Material{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MaterialCode:      code,
		MaterialName:      name,
		Spec:              spec,
		Unit:              unit,
		Category:          category,
		Supplier:          supplier,
		UnitPrice:         unitPrice,
		MinStock:          minStock,
		MaxStock:          maxStock,
		CurrentStock:      initialStock,
		StockValue:        unitPrice.Mul(decimal.NewFromInt(initialStock)),
		Status:            MaterialStatusActive,
	}

	m.AddDomainEvent(NewMaterialCreatedEvent(m))

	return m, nil
}

// IsActive returns true if the material participates in stock operations
func (m *Material) IsActive() bool {
	return m.Status == MaterialStatusActive
}

// StockStatus derives the stock level classification. Thresholds with a zero
// value are treated as unset and never trigger; boundaries are inclusive.
func (m *Material) StockStatus() StockStatus {
	if m.MinStock > 0 && m.CurrentStock <= m.MinStock {
		return StockStatusLow
	}
	if m.MaxStock > 0 && m.CurrentStock >= m.MaxStock {
		return StockStatusHigh
	}
	return StockStatusNormal
}

// ApplyDelta applies a signed stock adjustment together with its value
// change. It rejects adjustments that would drive the stock negative.
func (m *Material) ApplyDelta(qty int64, value decimal.Decimal) error {
	newStock := m.CurrentStock + qty
	if newStock < 0 {
		return shared.NewValidationError(fmt.Sprintf("Insufficient stock for %s: have %d, requested change %d", m.MaterialCode, m.CurrentStock, qty))
	}

	m.CurrentStock = newStock
	m.StockValue = m.StockValue.Add(value)
	if m.StockValue.IsNegative() {
		m.StockValue = decimal.Zero
	}
	m.IncrementVersion()

	return nil
}

// UpdateInfo updates the descriptive master data fields
func (m *Material) UpdateInfo(name, spec, unit, category, supplier string, unitPrice decimal.Decimal) error {
	if name == "" {
		return shared.NewValidationError("Material name cannot be empty")
	}
	if unit == "" {
		return shared.NewValidationError("Material unit cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("Unit price cannot be negative")
	}

	m.MaterialName = name
	m.Spec = spec
	m.Unit = unit
	m.Category = category
	m.Supplier = supplier
	m.UnitPrice = unitPrice
	m.IncrementVersion()

	return nil
}

// UpdateThresholds updates the min/max warning thresholds
func (m *Material) UpdateThresholds(minStock, maxStock int64) error {
	if minStock < 0 || maxStock < 0 {
		return shared.NewValidationError("Stock thresholds cannot be negative")
	}
	if minStock > 0 && maxStock > 0 && minStock >= maxStock {
		return shared.NewValidationError("Minimum stock must be below maximum stock")
	}

	m.MinStock = minStock
	m.MaxStock = maxStock
	m.IncrementVersion()

	return nil
}

// Deactivate removes the material from active stock operations. Inactive
// materials are excluded from count task snapshots and warning sweeps.
func (m *Material) Deactivate() error {
	if m.Status == MaterialStatusInactive {
		return shared.NewInvalidStateError("Material is already inactive")
	}

	m.Status = MaterialStatusInactive
	m.IncrementVersion()
	m.AddDomainEvent(NewMaterialDeactivatedEvent(m))

	return nil
}

// Activate re-enables an inactive material
func (m *Material) Activate() error {
	if m.Status == MaterialStatusActive {
		return shared.NewInvalidStateError("Material is already active")
	}

	m.Status = MaterialStatusActive
	m.IncrementVersion()

	return nil
}
