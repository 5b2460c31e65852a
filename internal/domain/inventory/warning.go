package inventory

import (
	"time"

	"github.com/wims/backend/internal/domain/shared"
)

// WarningType tells which threshold a material has crossed
type WarningType string

const (
	WarningTypeLow  WarningType = "low"
	WarningTypeHigh WarningType = "high"
)

// String returns the string representation of WarningType
func (w WarningType) String() string {
	return string(w)
}

// WarningLevel grades the severity of a stock warning
type WarningLevel string

const (
	WarningLevelWarning WarningLevel = "warning"
	WarningLevelDanger  WarningLevel = "danger"
)

// String returns the string representation of WarningLevel
func (l WarningLevel) String() string {
	return string(l)
}

// WarningStatus represents the handling status of a warning
type WarningStatus string

const (
	WarningStatusPending  WarningStatus = "pending"
	WarningStatusResolved WarningStatus = "resolved"
)

// EvaluateMaterial derives the warning condition for a material. The second
// return value is false when the material is inside its threshold band or
// has no thresholds configured. Boundaries are inclusive: stock at exactly
// min or max already warns.
func EvaluateMaterial(m *Material) (WarningType, WarningLevel, bool) {
	if m.MinStock > 0 && m.CurrentStock <= m.MinStock {
		level := WarningLevelWarning
		if m.CurrentStock == 0 || m.CurrentStock*2 < m.MinStock {
			level = WarningLevelDanger
		}
		return WarningTypeLow, level, true
	}
	if m.MaxStock > 0 && m.CurrentStock >= m.MaxStock {
		level := WarningLevelWarning
		if m.CurrentStock*10 > m.MaxStock*11 {
			level = WarningLevelDanger
		}
		return WarningTypeHigh, level, true
	}
	return "", "", false
}

// StockWarning records that a material's stock is outside its configured
// band. One pending warning exists per material at most; the sweep refreshes
// it in place and resolves it once the stock recovers.
type StockWarning struct {
	shared.BaseAggregateRoot
	MaterialID   int64
	MaterialCode string
	MaterialName string
	Unit         string
	WarningType  WarningType
	Level        WarningLevel
	CurrentStock int64
	MinStock     int64
	MaxStock     int64
	Status       WarningStatus
	ResolvedAt   *time.Time
}

// NewStockWarning creates a pending warning for a material outside its band
func NewStockWarning(m *Material, warningType WarningType, level WarningLevel) *StockWarning {
	w := &StockWarning{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MaterialID:        m.ID,
		MaterialCode:      m.MaterialCode,
		MaterialName:      m.MaterialName,
		Unit:              m.Unit,
		WarningType:       warningType,
		Level:             level,
		CurrentStock:      m.CurrentStock,
		MinStock:          m.MinStock,
		MaxStock:          m.MaxStock,
		Status:            WarningStatusPending,
	}

	w.AddDomainEvent(NewStockWarningRaisedEvent(w))

	return w
}

// Refresh updates a pending warning with the material's latest state
func (w *StockWarning) Refresh(m *Material, warningType WarningType, level WarningLevel) error {
	if w.Status != WarningStatusPending {
		return shared.NewInvalidStateError("Only pending warnings can be refreshed")
	}

	w.WarningType = warningType
	w.Level = level
	w.CurrentStock = m.CurrentStock
	w.MinStock = m.MinStock
	w.MaxStock = m.MaxStock
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// Resolve closes the warning once the material's stock is back in band
func (w *StockWarning) Resolve() error {
	if w.Status == WarningStatusResolved {
		return shared.NewInvalidStateError("Warning is already resolved")
	}

	now := time.Now()
	w.Status = WarningStatusResolved
	w.ResolvedAt = &now
	w.UpdatedAt = now
	w.IncrementVersion()

	w.AddDomainEvent(NewStockWarningResolvedEvent(w))

	return nil
}
