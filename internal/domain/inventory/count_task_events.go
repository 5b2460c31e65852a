package inventory

import (
	"time"

	"github.com/wims/backend/internal/domain/shared"
)

// Aggregate type constant for CountTask
const AggregateTypeCountTask = "CountTask"

// CountTask event type constants
const (
	EventTypeCountTaskCreated   = "CountTaskCreated"
	EventTypeCountItemSubmitted = "CountItemSubmitted"
	EventTypeCountTaskCompleted = "CountTaskCompleted"
	EventTypeCountTaskCancelled = "CountTaskCancelled"
)

// CountTaskCreatedEvent is raised when a count task is created
type CountTaskCreatedEvent struct {
	shared.BaseDomainEvent
	TaskID    int64  `json:"task_id"`
	TaskNo    string `json:"task_no"`
	CreatedBy string `json:"created_by"`
	ItemCount int    `json:"item_count"`
}

// NewCountTaskCreatedEvent creates a new CountTaskCreatedEvent
func NewCountTaskCreatedEvent(t *CountTask) *CountTaskCreatedEvent {
	return &CountTaskCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountTaskCreated, AggregateTypeCountTask, t.ID),
		TaskID:          t.ID,
		TaskNo:          t.TaskNo,
		CreatedBy:       t.CreatedBy,
		ItemCount:       t.ItemCount(),
	}
}

// EventType returns the event type name
func (e *CountTaskCreatedEvent) EventType() string {
	return EventTypeCountTaskCreated
}

// CountItemSubmittedEvent is raised when a counted quantity is recorded
type CountItemSubmittedEvent struct {
	shared.BaseDomainEvent
	TaskID       int64    `json:"task_id"`
	TaskNo       string   `json:"task_no"`
	ItemID       int64    `json:"item_id"`
	MaterialCode string   `json:"material_code"`
	BookQty      int64    `json:"book_qty"`
	RealQty      int64    `json:"real_qty"`
	DiffQty      int64    `json:"diff_qty"`
	DiffType     DiffType `json:"diff_type"`
	Operator     string   `json:"operator"`
}

// NewCountItemSubmittedEvent creates a new CountItemSubmittedEvent
func NewCountItemSubmittedEvent(t *CountTask, item *CountItem) *CountItemSubmittedEvent {
	var realQty int64
	if item.RealQty != nil {
		realQty = *item.RealQty
	}
	return &CountItemSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountItemSubmitted, AggregateTypeCountTask, t.ID),
		TaskID:          t.ID,
		TaskNo:          t.TaskNo,
		ItemID:          item.ID,
		MaterialCode:    item.MaterialCode,
		BookQty:         item.BookQty,
		RealQty:         realQty,
		DiffQty:         item.DiffQty,
		DiffType:        item.DiffType,
		Operator:        item.Operator,
	}
}

// EventType returns the event type name
func (e *CountItemSubmittedEvent) EventType() string {
	return EventTypeCountItemSubmitted
}

// CountTaskCompletedEvent is raised when a count task is completed and its
// adjustments have been generated
type CountTaskCompletedEvent struct {
	shared.BaseDomainEvent
	TaskID      int64     `json:"task_id"`
	TaskNo      string    `json:"task_no"`
	AdjustCount int       `json:"adjust_count"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewCountTaskCompletedEvent creates a new CountTaskCompletedEvent
func NewCountTaskCompletedEvent(t *CountTask, adjustCount int) *CountTaskCompletedEvent {
	var completedAt time.Time
	if t.CompletedAt != nil {
		completedAt = *t.CompletedAt
	}
	return &CountTaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountTaskCompleted, AggregateTypeCountTask, t.ID),
		TaskID:          t.ID,
		TaskNo:          t.TaskNo,
		AdjustCount:     adjustCount,
		CompletedAt:     completedAt,
	}
}

// EventType returns the event type name
func (e *CountTaskCompletedEvent) EventType() string {
	return EventTypeCountTaskCompleted
}

// CountTaskCancelledEvent is raised when a count task is cancelled
type CountTaskCancelledEvent struct {
	shared.BaseDomainEvent
	TaskID int64  `json:"task_id"`
	TaskNo string `json:"task_no"`
	Reason string `json:"reason"`
}

// NewCountTaskCancelledEvent creates a new CountTaskCancelledEvent
func NewCountTaskCancelledEvent(t *CountTask) *CountTaskCancelledEvent {
	return &CountTaskCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountTaskCancelled, AggregateTypeCountTask, t.ID),
		TaskID:          t.ID,
		TaskNo:          t.TaskNo,
		Reason:          t.Remark,
	}
}

// EventType returns the event type name
func (e *CountTaskCancelledEvent) EventType() string {
	return EventTypeCountTaskCancelled
}
