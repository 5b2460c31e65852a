package inventory

import (
	"fmt"
	"time"

	"github.com/wims/backend/internal/domain/shared"
)

// CountTaskStatus represents the status of a stock count task
type CountTaskStatus string

const (
	CountTaskStatusPending   CountTaskStatus = "pending"
	CountTaskStatusDoing     CountTaskStatus = "doing"
	CountTaskStatusDone      CountTaskStatus = "done"
	CountTaskStatusCancelled CountTaskStatus = "cancelled"
)

// IsValid checks if the status is a valid CountTaskStatus
func (s CountTaskStatus) IsValid() bool {
	switch s {
	case CountTaskStatusPending, CountTaskStatusDoing, CountTaskStatusDone, CountTaskStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of CountTaskStatus
func (s CountTaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no outbound transitions
func (s CountTaskStatus) IsTerminal() bool {
	return s == CountTaskStatusDone || s == CountTaskStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s CountTaskStatus) CanTransitionTo(target CountTaskStatus) bool {
	switch s {
	case CountTaskStatusPending:
		return target == CountTaskStatusDoing || target == CountTaskStatusDone || target == CountTaskStatusCancelled
	case CountTaskStatusDoing:
		return target == CountTaskStatusDone || target == CountTaskStatusCancelled
	case CountTaskStatusDone, CountTaskStatusCancelled:
		return false
	}
	return false
}

// DiffType classifies the discrepancy between real and book quantity
type DiffType string

const (
	DiffTypeGain DiffType = "gain"
	DiffTypeLoss DiffType = "loss"
	DiffTypeNone DiffType = "none"
)

// String returns the string representation of DiffType
func (d DiffType) String() string {
	return string(d)
}

// CountItem is one line of a count task. The material identity and book
// quantity are frozen at task creation; only the counted fields change.
type CountItem struct {
	shared.BaseEntity
	TaskID       int64
	MaterialID   int64
	MaterialCode string
	MaterialName string
	Spec         string
	Unit         string
	BookQty      int64
	RealQty      *int64
	DiffQty      int64
	DiffType     DiffType
	Operator     string
	Remark       string
	OperatedAt   *time.Time
}

// newCountItem snapshots one material into a count item
func newCountItem(material *Material) CountItem {
	return CountItem{
		BaseEntity:   shared.NewBaseEntity(),
		MaterialID:   material.ID,
		MaterialCode: material.MaterialCode,
		MaterialName: material.MaterialName,
		Spec:         material.Spec,
		Unit:         material.Unit,
		BookQty:      material.CurrentStock,
	}
}

// Counted returns true once a real quantity has been submitted
func (i *CountItem) Counted() bool {
	return i.RealQty != nil
}

// HasDifference returns true if the counted quantity differs from the book quantity
func (i *CountItem) HasDifference() bool {
	return i.Counted() && i.DiffQty != 0
}

// recordCount overwrites the counted quantity. Resubmission is
// last-write-wins; no submission history is kept.
func (i *CountItem) recordCount(realQty int64, operator, remark string) error {
	if realQty < 0 {
		return shared.NewValidationError("Real quantity cannot be negative")
	}

	now := time.Now()
	i.RealQty = &realQty
	i.DiffQty = realQty - i.BookQty
	switch {
	case i.DiffQty > 0:
		i.DiffType = DiffTypeGain
	case i.DiffQty < 0:
		i.DiffType = DiffTypeLoss
	default:
		i.DiffType = DiffTypeNone
	}
	i.Operator = operator
	i.Remark = remark
	i.OperatedAt = &now
	i.UpdatedAt = now

	return nil
}

// Adjustment describes one ledger correction produced by completing a task
type Adjustment struct {
	MaterialID   int64
	MaterialCode string
	DiffType     DiffType
	Qty          int64 // absolute discrepancy
	DiffQty      int64 // signed delta to apply to the ledger
}

// CountTask is the aggregate root of the stock count workflow. It owns its
// items exclusively; the item set is fixed at creation and the task is never
// deleted once created.
type CountTask struct {
	shared.BaseAggregateRoot
	TaskNo      string
	Status      CountTaskStatus
	CreatedBy   string
	Remark      string
	CompletedAt *time.Time
	Items       []CountItem
}

// NewCountTask creates a count task and snapshots one item per material.
// Callers pass the currently active materials; later ledger changes do not
// alter the snapshotted book quantities.
func NewCountTask(taskNo, createdBy, remark string, materials []*Material) (*CountTask, error) {
	if taskNo == "" {
		return nil, shared.NewValidationError("Task number cannot be empty")
	}
	if createdBy == "" {
		return nil, shared.NewValidationError("Created by cannot be empty")
	}

	t := &CountTask{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TaskNo:            taskNo,
		Status:            CountTaskStatusPending,
		CreatedBy:         createdBy,
		Remark:            remark,
		Items:             make([]CountItem, 0, len(materials)),
	}

	for _, m := range materials {
		t.Items = append(t.Items, newCountItem(m))
	}

	t.AddDomainEvent(NewCountTaskCreatedEvent(t))

	return t, nil
}

// ItemCount returns the number of items snapshotted into the task
func (t *CountTask) ItemCount() int {
	return len(t.Items)
}

// CountedCount returns the number of items with a submitted real quantity
func (t *CountTask) CountedCount() int {
	n := 0
	for i := range t.Items {
		if t.Items[i].Counted() {
			n++
		}
	}
	return n
}

// FindItem returns the item with the given ID, or nil if the task does not own it
func (t *CountTask) FindItem(itemID int64) *CountItem {
	for i := range t.Items {
		if t.Items[i].ID == itemID {
			return &t.Items[i]
		}
	}
	return nil
}

// SubmitItem records a counted quantity for one item. The first submission
// moves a pending task to doing.
func (t *CountTask) SubmitItem(itemID, realQty int64, operator, remark string) (*CountItem, error) {
	if t.Status.IsTerminal() {
		return nil, shared.NewInvalidStateError(fmt.Sprintf("Task %s is %s and no longer accepts submissions", t.TaskNo, t.Status))
	}

	item := t.FindItem(itemID)
	if item == nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("Count item %d not found in task %s", itemID, t.TaskNo))
	}

	if err := item.recordCount(realQty, operator, remark); err != nil {
		return nil, err
	}

	if t.Status == CountTaskStatusPending {
		t.Status = CountTaskStatusDoing
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewCountItemSubmittedEvent(t, item))

	return item, nil
}

// Complete finishes the task and returns the ledger adjustments to apply,
// one per discrepant item in item order. Uncounted items are treated as
// matching the book quantity and produce no adjustment. A clean count
// yields an empty adjustment list.
func (t *CountTask) Complete() ([]Adjustment, error) {
	if !t.Status.CanTransitionTo(CountTaskStatusDone) {
		return nil, shared.NewInvalidStateError(fmt.Sprintf("Task %s is %s and cannot be completed", t.TaskNo, t.Status))
	}

	adjustments := make([]Adjustment, 0)
	for i := range t.Items {
		item := &t.Items[i]
		if !item.HasDifference() {
			continue
		}
		qty := item.DiffQty
		if qty < 0 {
			qty = -qty
		}
		adjustments = append(adjustments, Adjustment{
			MaterialID:   item.MaterialID,
			MaterialCode: item.MaterialCode,
			DiffType:     item.DiffType,
			Qty:          qty,
			DiffQty:      item.DiffQty,
		})
	}

	now := time.Now()
	t.Status = CountTaskStatusDone
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewCountTaskCompletedEvent(t, len(adjustments)))

	return adjustments, nil
}

// Cancel discards the task without touching the ledger. Submitted counts
// are kept for audit but never applied.
func (t *CountTask) Cancel(reason string) error {
	if !t.Status.CanTransitionTo(CountTaskStatusCancelled) {
		return shared.NewInvalidStateError(fmt.Sprintf("Task %s is %s and cannot be cancelled", t.TaskNo, t.Status))
	}

	t.Status = CountTaskStatusCancelled
	if reason != "" {
		t.Remark = reason
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewCountTaskCancelledEvent(t))

	return nil
}

// DiscrepantItems returns items whose counted quantity differs from the book quantity
func (t *CountTask) DiscrepantItems() []CountItem {
	result := make([]CountItem, 0)
	for i := range t.Items {
		if t.Items[i].HasDifference() {
			result = append(result, t.Items[i])
		}
	}
	return result
}
