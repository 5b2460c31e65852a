package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CountService drives the stock count workflow: task creation with book
// quantity snapshots, count submission, and transactional completion that
// reconciles the material ledger.
type CountService struct {
	taskRepo     inventory.CountTaskRepository
	materialRepo inventory.MaterialRepository
	txScope      inventory.TransactionScope
	warnings     WarningChecker
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewCountService creates a new CountService
func NewCountService(
	taskRepo inventory.CountTaskRepository,
	materialRepo inventory.MaterialRepository,
	txScope inventory.TransactionScope,
	warnings WarningChecker,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *CountService {
	return &CountService{
		taskRepo:     taskRepo,
		materialRepo: materialRepo,
		txScope:      txScope,
		warnings:     warnings,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// ===================== Query Methods =====================

// GetByID retrieves a count task with its full item list
func (s *CountService) GetByID(ctx context.Context, id int64) (*CountTaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCountTaskResponse(t)
	return &response, nil
}

// List retrieves a paginated list of count tasks with per-task item counts
func (s *CountService) List(ctx context.Context, filter CountTaskListFilter) ([]CountTaskListResponse, int64, error) {
	domainFilter := inventory.CountTaskFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		Status: filter.Status,
	}
	domainFilter.Normalize()

	total, err := s.taskRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	tasks, err := s.taskRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	taskIDs := make([]int64, 0, len(tasks))
	for i := range tasks {
		taskIDs = append(taskIDs, tasks[i].ID)
	}
	counts, err := s.taskRepo.ItemCounts(ctx, taskIDs)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CountTaskListResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, ToCountTaskListResponse(&tasks[i], counts[tasks[i].ID]))
	}

	return responses, total, nil
}

// ===================== Command Methods =====================

// Create creates a count task and snapshots every active material into it
func (s *CountService) Create(ctx context.Context, req CreateCountTaskRequest) (*CountTaskResponse, error) {
	materials, err := s.materialRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]*inventory.Material, 0, len(materials))
	for i := range materials {
		refs = append(refs, &materials[i])
	}

	var t *inventory.CountTask
	err = withNumberRetry(func() error {
		taskNo, err := s.taskRepo.GenerateTaskNo(ctx)
		if err != nil {
			return err
		}

		task, err := inventory.NewCountTask(taskNo, req.CreatedBy, req.Remark, refs)
		if err != nil {
			return err
		}

		if err := s.taskRepo.Save(ctx, task); err != nil {
			return err
		}

		t = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, t)

	response := ToCountTaskResponse(t)
	return &response, nil
}

// SubmitItem records a counted quantity. The task and its item are written
// in one transaction so a concurrent reader never sees a half-applied
// submission.
func (s *CountService) SubmitItem(ctx context.Context, req SubmitCountItemRequest) (*CountItemResponse, error) {
	if req.RealQty == nil {
		return nil, shared.NewValidationError("Real quantity is required")
	}

	var task *inventory.CountTask
	var item *inventory.CountItem
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		t, err := repos.CountTasks().FindByItemID(ctx, req.ItemID)
		if err != nil {
			return err
		}

		it, err := t.SubmitItem(req.ItemID, *req.RealQty, req.Operator, req.Remark)
		if err != nil {
			return err
		}

		if err := repos.CountTasks().Save(ctx, t); err != nil {
			return err
		}

		task = t
		item = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, task)

	response := ToCountItemResponse(item)
	return &response, nil
}

// Complete finishes a count task. In one transaction it applies the ledger
// delta for every discrepant item, appends one adjustment movement per
// delta, and marks the task done. A delta that would drive a material's
// stock negative rolls the whole completion back, leaving the task in its
// prior state.
func (s *CountService) Complete(ctx context.Context, taskID int64) (*CompleteCountTaskResult, error) {
	var task *inventory.CountTask
	var result CompleteCountTaskResult
	var affected []int64

	err := withNumberRetry(func() error {
		var err error
		task, result, affected, err = s.completeOnce(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// The task is durably completed at this point. A failed warning
	// re-check must not make completion look failed; the periodic sweep
	// repairs the warning list.
	for _, materialID := range affected {
		if err := s.warnings.CheckMaterial(ctx, materialID); err != nil {
			s.logger.Warn("Warning re-check failed after count completion",
				zap.Int64("material_id", materialID),
				zap.Error(err))
		}
	}

	s.publishEvents(ctx, task)

	return &result, nil
}

// completeOnce runs a single completion attempt inside one transaction
func (s *CountService) completeOnce(ctx context.Context, taskID int64) (*inventory.CountTask, CompleteCountTaskResult, []int64, error) {
	var task *inventory.CountTask
	var result CompleteCountTaskResult
	affected := make([]int64, 0)

	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		t, err := repos.CountTasks().FindByID(ctx, taskID)
		if err != nil {
			return err
		}

		adjustments, err := t.Complete()
		if err != nil {
			return err
		}

		records := make([]AdjustRecord, 0, len(adjustments))
		for _, adj := range adjustments {
			material, err := repos.Materials().FindByID(ctx, adj.MaterialID)
			if err != nil {
				return err
			}

			billNo, err := repos.Movements().GenerateBillNo(ctx, "ADJ")
			if err != nil {
				return err
			}

			value := material.UnitPrice.Mul(decimal.NewFromInt(adj.Qty))
			direction := inventory.MovementDirectionIn
			movementType := inventory.MovementTypeAdjustGain
			if adj.DiffType == inventory.DiffTypeLoss {
				direction = inventory.MovementDirectionOut
				movementType = inventory.MovementTypeAdjustLoss
			}

			movement, err := inventory.NewStockMovement(billNo, direction, movementType, material, adj.Qty, value, t.CreatedBy, "Stock count adjustment for "+t.TaskNo, *t.CompletedAt)
			if err != nil {
				return err
			}
			if err := repos.Movements().Save(ctx, movement); err != nil {
				return err
			}

			if err := repos.Materials().ApplyDelta(ctx, adj.MaterialID, adj.DiffQty, movement.SignedValue()); err != nil {
				return err
			}

			records = append(records, AdjustRecord{
				MaterialCode: adj.MaterialCode,
				DiffType:     adj.DiffType.String(),
				Qty:          adj.Qty,
				BillNo:       billNo,
			})
			affected = append(affected, adj.MaterialID)
		}

		if err := repos.CountTasks().Save(ctx, t); err != nil {
			return err
		}

		task = t
		result = CompleteCountTaskResult{
			TaskNo:        t.TaskNo,
			AdjustCount:   len(records),
			AdjustRecords: records,
		}
		return nil
	})
	return task, result, affected, err
}

// Cancel discards a count task without touching the ledger
func (s *CountService) Cancel(ctx context.Context, taskID int64, reason string) error {
	t, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := t.Cancel(reason); err != nil {
		return err
	}

	if err := s.taskRepo.Save(ctx, t); err != nil {
		return err
	}

	s.publishEvents(ctx, t)

	return nil
}

// publishEvents publishes domain events from the aggregate
func (s *CountService) publishEvents(ctx context.Context, t *inventory.CountTask) {
	if s.eventBus == nil || t == nil {
		return
	}

	for _, event := range t.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	t.ClearDomainEvents()
}
