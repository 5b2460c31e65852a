package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeMaterial      = "Material"
	AggregateTypeStockMovement = "StockMovement"
	AggregateTypeStockWarning  = "StockWarning"
)

// Material and movement event type constants
const (
	EventTypeMaterialCreated      = "MaterialCreated"
	EventTypeMaterialDeactivated  = "MaterialDeactivated"
	EventTypeStockMovementCreated = "StockMovementCreated"
	EventTypeStockMovementAmended = "StockMovementAmended"
	EventTypeStockMovementVoided  = "StockMovementVoided"
	EventTypeStockWarningRaised   = "StockWarningRaised"
	EventTypeStockWarningResolved = "StockWarningResolved"
)

// MaterialCreatedEvent is raised when a material is initialized
type MaterialCreatedEvent struct {
	shared.BaseDomainEvent
	MaterialID   int64  `json:"material_id"`
	MaterialCode string `json:"material_code"`
	MaterialName string `json:"material_name"`
	InitialStock int64  `json:"initial_stock"`
}

// NewMaterialCreatedEvent creates a new MaterialCreatedEvent
func NewMaterialCreatedEvent(m *Material) *MaterialCreatedEvent {
	return &MaterialCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialCreated, AggregateTypeMaterial, m.ID),
		MaterialID:      m.ID,
		MaterialCode:    m.MaterialCode,
		MaterialName:    m.MaterialName,
		InitialStock:    m.CurrentStock,
	}
}

// EventType returns the event type name
func (e *MaterialCreatedEvent) EventType() string {
	return EventTypeMaterialCreated
}

// MaterialDeactivatedEvent is raised when a material is deactivated
type MaterialDeactivatedEvent struct {
	shared.BaseDomainEvent
	MaterialID   int64  `json:"material_id"`
	MaterialCode string `json:"material_code"`
}

// NewMaterialDeactivatedEvent creates a new MaterialDeactivatedEvent
func NewMaterialDeactivatedEvent(m *Material) *MaterialDeactivatedEvent {
	return &MaterialDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialDeactivated, AggregateTypeMaterial, m.ID),
		MaterialID:      m.ID,
		MaterialCode:    m.MaterialCode,
	}
}

// EventType returns the event type name
func (e *MaterialDeactivatedEvent) EventType() string {
	return EventTypeMaterialDeactivated
}

// StockMovementCreatedEvent is raised when a stock movement is recorded
type StockMovementCreatedEvent struct {
	shared.BaseDomainEvent
	MovementID   int64             `json:"movement_id"`
	BillNo       string            `json:"bill_no"`
	Direction    MovementDirection `json:"direction"`
	MovementType MovementType      `json:"movement_type"`
	MaterialCode string            `json:"material_code"`
	Quantity     int64             `json:"quantity"`
	Value        decimal.Decimal   `json:"value"`
}

// NewStockMovementCreatedEvent creates a new StockMovementCreatedEvent
func NewStockMovementCreatedEvent(sm *StockMovement) *StockMovementCreatedEvent {
	return &StockMovementCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementCreated, AggregateTypeStockMovement, sm.ID),
		MovementID:      sm.ID,
		BillNo:          sm.BillNo,
		Direction:       sm.Direction,
		MovementType:    sm.MovementType,
		MaterialCode:    sm.MaterialCode,
		Quantity:        sm.Quantity,
		Value:           sm.Value,
	}
}

// EventType returns the event type name
func (e *StockMovementCreatedEvent) EventType() string {
	return EventTypeStockMovementCreated
}

// StockMovementAmendedEvent is raised when a movement's quantity or value is corrected
type StockMovementAmendedEvent struct {
	shared.BaseDomainEvent
	MovementID   int64           `json:"movement_id"`
	BillNo       string          `json:"bill_no"`
	MaterialCode string          `json:"material_code"`
	Quantity     int64           `json:"quantity"`
	Value        decimal.Decimal `json:"value"`
}

// NewStockMovementAmendedEvent creates a new StockMovementAmendedEvent
func NewStockMovementAmendedEvent(sm *StockMovement) *StockMovementAmendedEvent {
	return &StockMovementAmendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementAmended, AggregateTypeStockMovement, sm.ID),
		MovementID:      sm.ID,
		BillNo:          sm.BillNo,
		MaterialCode:    sm.MaterialCode,
		Quantity:        sm.Quantity,
		Value:           sm.Value,
	}
}

// EventType returns the event type name
func (e *StockMovementAmendedEvent) EventType() string {
	return EventTypeStockMovementAmended
}

// StockMovementVoidedEvent is raised when a movement is voided
type StockMovementVoidedEvent struct {
	shared.BaseDomainEvent
	MovementID   int64  `json:"movement_id"`
	BillNo       string `json:"bill_no"`
	MaterialCode string `json:"material_code"`
}

// NewStockMovementVoidedEvent creates a new StockMovementVoidedEvent
func NewStockMovementVoidedEvent(sm *StockMovement) *StockMovementVoidedEvent {
	return &StockMovementVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementVoided, AggregateTypeStockMovement, sm.ID),
		MovementID:      sm.ID,
		BillNo:          sm.BillNo,
		MaterialCode:    sm.MaterialCode,
	}
}

// EventType returns the event type name
func (e *StockMovementVoidedEvent) EventType() string {
	return EventTypeStockMovementVoided
}

// StockWarningRaisedEvent is raised when a material crosses a threshold
type StockWarningRaisedEvent struct {
	shared.BaseDomainEvent
	WarningID    int64        `json:"warning_id"`
	MaterialCode string       `json:"material_code"`
	WarningType  WarningType  `json:"warning_type"`
	Level        WarningLevel `json:"level"`
	CurrentStock int64        `json:"current_stock"`
}

// NewStockWarningRaisedEvent creates a new StockWarningRaisedEvent
func NewStockWarningRaisedEvent(w *StockWarning) *StockWarningRaisedEvent {
	return &StockWarningRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockWarningRaised, AggregateTypeStockWarning, w.ID),
		WarningID:       w.ID,
		MaterialCode:    w.MaterialCode,
		WarningType:     w.WarningType,
		Level:           w.Level,
		CurrentStock:    w.CurrentStock,
	}
}

// EventType returns the event type name
func (e *StockWarningRaisedEvent) EventType() string {
	return EventTypeStockWarningRaised
}

// StockWarningResolvedEvent is raised when a material's stock recovers
type StockWarningResolvedEvent struct {
	shared.BaseDomainEvent
	WarningID    int64  `json:"warning_id"`
	MaterialCode string `json:"material_code"`
}

// NewStockWarningResolvedEvent creates a new StockWarningResolvedEvent
func NewStockWarningResolvedEvent(w *StockWarning) *StockWarningResolvedEvent {
	return &StockWarningResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockWarningResolved, AggregateTypeStockWarning, w.ID),
		WarningID:       w.ID,
		MaterialCode:    w.MaterialCode,
	}
}

// EventType returns the event type name
func (e *StockWarningResolvedEvent) EventType() string {
	return EventTypeStockWarningResolved
}
