package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// MovementDirection tells whether a movement adds to or removes from stock
type MovementDirection string

const (
	MovementDirectionIn  MovementDirection = "in"
	MovementDirectionOut MovementDirection = "out"
)

// IsValid checks if the direction is a valid MovementDirection
func (d MovementDirection) IsValid() bool {
	return d == MovementDirectionIn || d == MovementDirectionOut
}

// String returns the string representation of MovementDirection
func (d MovementDirection) String() string {
	return string(d)
}

// MovementType classifies the business reason for a stock movement
type MovementType string

const (
	MovementTypePurchase   MovementType = "purchase"
	MovementTypeProduction MovementType = "production"
	MovementTypeReturn     MovementType = "return"
	MovementTypeSales      MovementType = "sales"
	MovementTypeOther      MovementType = "other"
	MovementTypeAdjustGain MovementType = "adjust_gain"
	MovementTypeAdjustLoss MovementType = "adjust_loss"
)

// ValidFor checks if the type is allowed for the given direction
func (t MovementType) ValidFor(direction MovementDirection) bool {
	switch direction {
	case MovementDirectionIn:
		switch t {
		case MovementTypePurchase, MovementTypeProduction, MovementTypeReturn,
			MovementTypeOther, MovementTypeAdjustGain:
			return true
		}
	case MovementDirectionOut:
		switch t {
		case MovementTypeProduction, MovementTypeSales, MovementTypeOther,
			MovementTypeAdjustLoss:
			return true
		}
	}
	return false
}

// IsAdjustment returns true for movements generated by count reconciliation
func (t MovementType) IsAdjustment() bool {
	return t == MovementTypeAdjustGain || t == MovementTypeAdjustLoss
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// MovementStatus represents the record status of a stock movement
type MovementStatus string

const (
	MovementStatusNormal MovementStatus = "normal"
	MovementStatusVoided MovementStatus = "voided"
)

// StockMovement is one entry in the transaction log. Each entry records a
// single in or out movement of one material, with the material identity
// captured at record time so later master data edits do not rewrite history.
type StockMovement struct {
	shared.BaseAggregateRoot
	BillNo       string
	Direction    MovementDirection
	MovementType MovementType
	MaterialID   int64
	MaterialCode string
	MaterialName string
	Spec         string
	Unit         string
	Quantity     int64
	Value        decimal.Decimal
	Operator     string
	Remark       string
	OccurredAt   time.Time
	Status       MovementStatus
}

// NewStockMovement creates a new stock movement entry
func NewStockMovement(billNo string, direction MovementDirection, movementType MovementType, material *Material, quantity int64, value decimal.Decimal, operator, remark string, occurredAt time.Time) (*StockMovement, error) {
	if billNo == "" {
		return nil, shared.NewValidationError("Bill number cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewValidationError("Invalid movement direction")
	}
	if !movementType.ValidFor(direction) {
		return nil, shared.NewValidationError(fmt.Sprintf("Movement type %s is not valid for direction %s", movementType, direction))
	}
	if material == nil {
		return nil, shared.NewValidationError("Material is required")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	if value.IsNegative() {
		return nil, shared.NewValidationError("Value cannot be negative")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	sm := &StockMovement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNo:            billNo,
		Direction:         direction,
		MovementType:      movementType,
		MaterialID:        material.ID,
		MaterialCode:      material.MaterialCode,
		MaterialName:      material.MaterialName,
		Spec:              material.Spec,
		Unit:              material.Unit,
		Quantity:          quantity,
		Value:             value,
		Operator:          operator,
		Remark:            remark,
		OccurredAt:        occurredAt,
		Status:            MovementStatusNormal,
	}

	sm.AddDomainEvent(NewStockMovementCreatedEvent(sm))

	return sm, nil
}

// SignedQty returns the quantity with the direction's sign applied
func (sm *StockMovement) SignedQty() int64 {
	if sm.Direction == MovementDirectionOut {
		return -sm.Quantity
	}
	return sm.Quantity
}

// SignedValue returns the value with the direction's sign applied
func (sm *StockMovement) SignedValue() decimal.Decimal {
	if sm.Direction == MovementDirectionOut {
		return sm.Value.Neg()
	}
	return sm.Value
}

// Amend corrects the quantity and value of a movement. Adjustment entries
// produced by count completion are part of the audit trail and cannot be
// amended.
func (sm *StockMovement) Amend(quantity int64, value decimal.Decimal, remark string) error {
	if sm.Status != MovementStatusNormal {
		return shared.NewInvalidStateError("Voided movements cannot be amended")
	}
	if sm.MovementType.IsAdjustment() {
		return shared.NewInvalidStateError("Adjustment movements cannot be amended")
	}
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if value.IsNegative() {
		return shared.NewValidationError("Value cannot be negative")
	}

	sm.Quantity = quantity
	sm.Value = value
	sm.Remark = remark
	sm.IncrementVersion()
	sm.AddDomainEvent(NewStockMovementAmendedEvent(sm))

	return nil
}

// Void marks the movement as voided. The caller is responsible for
// reversing the ledger effect in the same transaction.
func (sm *StockMovement) Void() error {
	if sm.Status == MovementStatusVoided {
		return shared.NewInvalidStateError("Movement is already voided")
	}
	if sm.MovementType.IsAdjustment() {
		return shared.NewInvalidStateError("Adjustment movements cannot be voided")
	}

	sm.Status = MovementStatusVoided
	sm.IncrementVersion()
	sm.AddDomainEvent(NewStockMovementVoidedEvent(sm))

	return nil
}
