package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wims/backend/internal/domain/inventory"
)

// MaterialModel is the persistence model for the Material aggregate root.
type MaterialModel struct {
	AggregateModel
	MaterialCode string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	MaterialName string          `gorm:"type:varchar(200);not null;index"`
	Spec         string          `gorm:"type:varchar(200)"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Category     string          `gorm:"type:varchar(100);index"`
	Supplier     string          `gorm:"type:varchar(200);index"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock     int64           `gorm:"not null;default:0"`
	MaxStock     int64           `gorm:"not null;default:0"`
	CurrentStock int64           `gorm:"not null;default:0"`
	StockValue   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (MaterialModel) TableName() string {
	return "materials"
}

// ToDomain converts the persistence model to a domain Material
func (m *MaterialModel) ToDomain() *inventory.Material {
	return &inventory.Material{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MaterialCode:      m.MaterialCode,
		MaterialName:      m.MaterialName,
		Spec:              m.Spec,
		Unit:              m.Unit,
		Category:          m.Category,
		Supplier:          m.Supplier,
		UnitPrice:         m.UnitPrice,
		MinStock:          m.MinStock,
		MaxStock:          m.MaxStock,
		CurrentStock:      m.CurrentStock,
		StockValue:        m.StockValue,
		Status:            inventory.MaterialStatus(m.Status),
	}
}

// MaterialModelFromDomain creates a persistence model from a domain Material
func MaterialModelFromDomain(mat *inventory.Material) *MaterialModel {
	m := &MaterialModel{}
	m.FromDomainAggregateRoot(mat.BaseAggregateRoot)
	m.MaterialCode = mat.MaterialCode
	m.MaterialName = mat.MaterialName
	m.Spec = mat.Spec
	m.Unit = mat.Unit
	m.Category = mat.Category
	m.Supplier = mat.Supplier
	m.UnitPrice = mat.UnitPrice
	m.MinStock = mat.MinStock
	m.MaxStock = mat.MaxStock
	m.CurrentStock = mat.CurrentStock
	m.StockValue = mat.StockValue
	m.Status = string(mat.Status)
	return m
}

// StockMovementModel is the persistence model for the StockMovement aggregate root.
type StockMovementModel struct {
	AggregateModel
	BillNo       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Direction    string          `gorm:"type:varchar(10);not null;index"`
	MovementType string          `gorm:"type:varchar(20);not null;index"`
	MaterialID   int64           `gorm:"not null;index"`
	MaterialCode string          `gorm:"type:varchar(50);not null;index"`
	MaterialName string          `gorm:"type:varchar(200);not null"`
	Spec         string          `gorm:"type:varchar(200)"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Quantity     int64           `gorm:"not null"`
	Value        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Operator     string          `gorm:"type:varchar(100);index"`
	Remark       string          `gorm:"type:varchar(500)"`
	OccurredAt   time.Time       `gorm:"not null;index"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillNo:            m.BillNo,
		Direction:         inventory.MovementDirection(m.Direction),
		MovementType:      inventory.MovementType(m.MovementType),
		MaterialID:        m.MaterialID,
		MaterialCode:      m.MaterialCode,
		MaterialName:      m.MaterialName,
		Spec:              m.Spec,
		Unit:              m.Unit,
		Quantity:          m.Quantity,
		Value:             m.Value,
		Operator:          m.Operator,
		Remark:            m.Remark,
		OccurredAt:        m.OccurredAt,
		Status:            inventory.MovementStatus(m.Status),
	}
}

// StockMovementModelFromDomain creates a persistence model from a domain StockMovement
func StockMovementModelFromDomain(sm *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{}
	m.FromDomainAggregateRoot(sm.BaseAggregateRoot)
	m.BillNo = sm.BillNo
	m.Direction = string(sm.Direction)
	m.MovementType = string(sm.MovementType)
	m.MaterialID = sm.MaterialID
	m.MaterialCode = sm.MaterialCode
	m.MaterialName = sm.MaterialName
	m.Spec = sm.Spec
	m.Unit = sm.Unit
	m.Quantity = sm.Quantity
	m.Value = sm.Value
	m.Operator = sm.Operator
	m.Remark = sm.Remark
	m.OccurredAt = sm.OccurredAt
	m.Status = string(sm.Status)
	return m
}

// CountTaskModel is the persistence model for the CountTask aggregate root.
type CountTaskModel struct {
	AggregateModel
	TaskNo      string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	CreatedBy   string     `gorm:"type:varchar(100);not null"`
	Remark      string     `gorm:"type:varchar(500)"`
	CompletedAt *time.Time `gorm:"index"`
	// Associations
	Items []CountItemModel `gorm:"foreignKey:TaskID;references:ID"`
}

// TableName returns the table name for GORM
func (CountTaskModel) TableName() string {
	return "count_tasks"
}

// ToDomain converts the persistence model to a domain CountTask
func (m *CountTaskModel) ToDomain() *inventory.CountTask {
	task := &inventory.CountTask{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TaskNo:            m.TaskNo,
		Status:            inventory.CountTaskStatus(m.Status),
		CreatedBy:         m.CreatedBy,
		Remark:            m.Remark,
		CompletedAt:       m.CompletedAt,
		Items:             make([]inventory.CountItem, len(m.Items)),
	}
	for i := range m.Items {
		task.Items[i] = *m.Items[i].ToDomain()
	}
	return task
}

// CountTaskModelFromDomain creates a persistence model from a domain CountTask
func CountTaskModelFromDomain(t *inventory.CountTask) *CountTaskModel {
	m := &CountTaskModel{}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.TaskNo = t.TaskNo
	m.Status = string(t.Status)
	m.CreatedBy = t.CreatedBy
	m.Remark = t.Remark
	m.CompletedAt = t.CompletedAt
	m.Items = make([]CountItemModel, len(t.Items))
	for i := range t.Items {
		m.Items[i] = *CountItemModelFromDomain(&t.Items[i])
	}
	return m
}

// CountItemModel is the persistence model for the CountItem entity.
type CountItemModel struct {
	BaseModel
	TaskID       int64      `gorm:"not null;index"`
	MaterialID   int64      `gorm:"not null;index"`
	MaterialCode string     `gorm:"type:varchar(50);not null"`
	MaterialName string     `gorm:"type:varchar(200);not null"`
	Spec         string     `gorm:"type:varchar(200)"`
	Unit         string     `gorm:"type:varchar(20);not null"`
	BookQty      int64      `gorm:"not null"`
	RealQty      *int64     `gorm:""`
	DiffQty      int64      `gorm:"not null;default:0"`
	DiffType     string     `gorm:"type:varchar(10);not null"`
	Operator     string     `gorm:"type:varchar(100)"`
	Remark       string     `gorm:"type:varchar(500)"`
	OperatedAt   *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (CountItemModel) TableName() string {
	return "count_items"
}

// ToDomain converts the persistence model to a domain CountItem
func (m *CountItemModel) ToDomain() *inventory.CountItem {
	return &inventory.CountItem{
		BaseEntity:   m.BaseModel.ToDomain(),
		TaskID:       m.TaskID,
		MaterialID:   m.MaterialID,
		MaterialCode: m.MaterialCode,
		MaterialName: m.MaterialName,
		Spec:         m.Spec,
		Unit:         m.Unit,
		BookQty:      m.BookQty,
		RealQty:      m.RealQty,
		DiffQty:      m.DiffQty,
		DiffType:     inventory.DiffType(m.DiffType),
		Operator:     m.Operator,
		Remark:       m.Remark,
		OperatedAt:   m.OperatedAt,
	}
}

// CountItemModelFromDomain creates a persistence model from a domain CountItem
func CountItemModelFromDomain(item *inventory.CountItem) *CountItemModel {
	m := &CountItemModel{}
	m.FromDomainBaseEntity(item.BaseEntity)
	m.TaskID = item.TaskID
	m.MaterialID = item.MaterialID
	m.MaterialCode = item.MaterialCode
	m.MaterialName = item.MaterialName
	m.Spec = item.Spec
	m.Unit = item.Unit
	m.BookQty = item.BookQty
	m.RealQty = item.RealQty
	m.DiffQty = item.DiffQty
	m.DiffType = string(item.DiffType)
	m.Operator = item.Operator
	m.Remark = item.Remark
	m.OperatedAt = item.OperatedAt
	return m
}

// StockWarningModel is the persistence model for the StockWarning aggregate root.
type StockWarningModel struct {
	AggregateModel
	MaterialID   int64      `gorm:"not null;index"`
	MaterialCode string     `gorm:"type:varchar(50);not null;index"`
	MaterialName string     `gorm:"type:varchar(200);not null"`
	Unit         string     `gorm:"type:varchar(20);not null"`
	WarningType  string     `gorm:"type:varchar(10);not null;index"`
	Level        string     `gorm:"type:varchar(10);not null;index"`
	CurrentStock int64      `gorm:"not null"`
	MinStock     int64      `gorm:"not null;default:0"`
	MaxStock     int64      `gorm:"not null;default:0"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	ResolvedAt   *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (StockWarningModel) TableName() string {
	return "stock_warnings"
}

// ToDomain converts the persistence model to a domain StockWarning
func (m *StockWarningModel) ToDomain() *inventory.StockWarning {
	return &inventory.StockWarning{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MaterialID:        m.MaterialID,
		MaterialCode:      m.MaterialCode,
		MaterialName:      m.MaterialName,
		Unit:              m.Unit,
		WarningType:       inventory.WarningType(m.WarningType),
		Level:             inventory.WarningLevel(m.Level),
		CurrentStock:      m.CurrentStock,
		MinStock:          m.MinStock,
		MaxStock:          m.MaxStock,
		Status:            inventory.WarningStatus(m.Status),
		ResolvedAt:        m.ResolvedAt,
	}
}

// StockWarningModelFromDomain creates a persistence model from a domain StockWarning
func StockWarningModelFromDomain(w *inventory.StockWarning) *StockWarningModel {
	m := &StockWarningModel{}
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.MaterialID = w.MaterialID
	m.MaterialCode = w.MaterialCode
	m.MaterialName = w.MaterialName
	m.Unit = w.Unit
	m.WarningType = string(w.WarningType)
	m.Level = string(w.Level)
	m.CurrentStock = w.CurrentStock
	m.MinStock = w.MinStock
	m.MaxStock = w.MaxStock
	m.Status = string(w.Status)
	m.ResolvedAt = w.ResolvedAt
	return m
}
