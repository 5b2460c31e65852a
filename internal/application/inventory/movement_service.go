package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MovementService records stock-in and stock-out movements and keeps the
// material ledger in step with them.
type MovementService struct {
	movementRepo inventory.StockMovementRepository
	txScope      inventory.TransactionScope
	warnings     WarningChecker
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(
	movementRepo inventory.StockMovementRepository,
	txScope inventory.TransactionScope,
	warnings WarningChecker,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		movementRepo: movementRepo,
		txScope:      txScope,
		warnings:     warnings,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// recheckWarnings re-evaluates a material's warning state after a
// committed ledger change. The movement is already durable at this
// point, so a failed re-check is logged rather than reported as an
// operation failure; the periodic sweep repairs the warning list.
func (s *MovementService) recheckWarnings(ctx context.Context, materialID int64) {
	if err := s.warnings.CheckMaterial(ctx, materialID); err != nil {
		s.logger.Warn("Warning re-check failed after movement",
			zap.Int64("material_id", materialID),
			zap.Error(err))
	}
}

// GetByID retrieves a movement by ID
func (s *MovementService) GetByID(ctx context.Context, id int64) (*MovementResponse, error) {
	sm, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToMovementResponse(sm)
	return &response, nil
}

// List retrieves a paginated movement list for one direction
func (s *MovementService) List(ctx context.Context, direction inventory.MovementDirection, filter MovementListFilter) ([]MovementResponse, int64, error) {
	domainFilter := inventory.MovementFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
		},
		Direction: &direction,
		BillNo:    filter.BillNo,
		Operator:  filter.Operator,
		StartTime: filter.StartTime,
		EndTime:   filter.EndTime,
	}
	if filter.MovementType != "" {
		mt := inventory.MovementType(filter.MovementType)
		if !mt.ValidFor(direction) {
			return nil, 0, shared.NewValidationError(fmt.Sprintf("Movement type %s is not valid for direction %s", mt, direction))
		}
		domainFilter.MovementType = &mt
	}
	domainFilter.Normalize()

	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}

// Create records a movement and applies its ledger delta in one
// transaction. Stock-outs that exceed the available stock are rejected.
func (s *MovementService) Create(ctx context.Context, direction inventory.MovementDirection, req CreateMovementRequest) (*MovementResponse, error) {
	movementType := inventory.MovementType(req.MovementType)
	if movementType.IsAdjustment() {
		return nil, shared.NewValidationError("Adjustment movements are generated by count completion only")
	}
	if !movementType.ValidFor(direction) {
		return nil, shared.NewValidationError(fmt.Sprintf("Movement type %s is not valid for direction %s", movementType, direction))
	}

	prefix := "IN"
	if direction == inventory.MovementDirectionOut {
		prefix = "OUT"
	}

	var movement *inventory.StockMovement
	create := func() error {
		return s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
			material, err := repos.Materials().FindByID(ctx, req.MaterialID)
			if err != nil {
				return err
			}
			if !material.IsActive() {
				return shared.NewInvalidStateError(fmt.Sprintf("Material %s is inactive", material.MaterialCode))
			}

			if direction == inventory.MovementDirectionIn && material.MaxStock > 0 && material.CurrentStock+req.Quantity > material.MaxStock {
				return shared.NewValidationError(fmt.Sprintf("Receiving %d would exceed the maximum stock of %d for %s", req.Quantity, material.MaxStock, material.MaterialCode))
			}

			value := material.UnitPrice.Mul(decimal.NewFromInt(req.Quantity))
			if req.Value != nil {
				value = *req.Value
			}

			occurredAt := time.Now()
			if req.OccurredAt != nil {
				occurredAt = *req.OccurredAt
			}

			billNo, err := repos.Movements().GenerateBillNo(ctx, prefix)
			if err != nil {
				return err
			}

			sm, err := inventory.NewStockMovement(billNo, direction, movementType, material, req.Quantity, value, req.Operator, req.Remark, occurredAt)
			if err != nil {
				return err
			}

			if err := repos.Movements().Save(ctx, sm); err != nil {
				return err
			}
			if err := repos.Materials().ApplyDelta(ctx, material.ID, sm.SignedQty(), sm.SignedValue()); err != nil {
				return err
			}

			movement = sm
			return nil
		})
	}
	if err := withNumberRetry(create); err != nil {
		return nil, err
	}

	s.recheckWarnings(ctx, movement.MaterialID)

	s.publishEvents(ctx, movement)

	response := ToMovementResponse(movement)
	return &response, nil
}

// Amend corrects a movement's quantity and value, re-applying the
// difference to the ledger in the same transaction.
func (s *MovementService) Amend(ctx context.Context, id int64, req AmendMovementRequest) (*MovementResponse, error) {
	var movement *inventory.StockMovement
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		sm, err := repos.Movements().FindByID(ctx, id)
		if err != nil {
			return err
		}

		material, err := repos.Materials().FindByID(ctx, sm.MaterialID)
		if err != nil {
			return err
		}

		value := material.UnitPrice.Mul(decimal.NewFromInt(req.Quantity))
		if req.Value != nil {
			value = *req.Value
		}

		oldQty := sm.SignedQty()
		oldValue := sm.SignedValue()

		if err := sm.Amend(req.Quantity, value, req.Remark); err != nil {
			return err
		}

		if err := repos.Movements().Save(ctx, sm); err != nil {
			return err
		}
		if err := repos.Materials().ApplyDelta(ctx, sm.MaterialID, sm.SignedQty()-oldQty, sm.SignedValue().Sub(oldValue)); err != nil {
			return err
		}

		movement = sm
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recheckWarnings(ctx, movement.MaterialID)

	s.publishEvents(ctx, movement)

	response := ToMovementResponse(movement)
	return &response, nil
}

// Void cancels a movement and reverses its ledger effect
func (s *MovementService) Void(ctx context.Context, id int64) error {
	var movement *inventory.StockMovement
	err := s.txScope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		sm, err := repos.Movements().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := sm.Void(); err != nil {
			return err
		}

		if err := repos.Movements().Save(ctx, sm); err != nil {
			return err
		}
		if err := repos.Materials().ApplyDelta(ctx, sm.MaterialID, -sm.SignedQty(), sm.SignedValue().Neg()); err != nil {
			return err
		}

		movement = sm
		return nil
	})
	if err != nil {
		return err
	}

	s.recheckWarnings(ctx, movement.MaterialID)

	s.publishEvents(ctx, movement)

	return nil
}

// publishEvents publishes domain events from the aggregate
func (s *MovementService) publishEvents(ctx context.Context, sm *inventory.StockMovement) {
	if s.eventBus == nil {
		return
	}

	for _, event := range sm.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	sm.ClearDomainEvents()
}
