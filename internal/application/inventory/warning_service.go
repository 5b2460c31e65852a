package inventory

import (
	"context"
	"errors"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
)

// WarningChecker re-evaluates warnings after stock mutations. Mutating
// services call it synchronously before returning so clients observe a
// consistent warning list.
type WarningChecker interface {
	// CheckMaterial re-evaluates the warning state of one material
	CheckMaterial(ctx context.Context, materialID int64) error
}

// WarningService evaluates and serves stock warnings
type WarningService struct {
	warningRepo  inventory.StockWarningRepository
	materialRepo inventory.MaterialRepository
	eventBus     shared.EventBus
}

// NewWarningService creates a new WarningService
func NewWarningService(warningRepo inventory.StockWarningRepository, materialRepo inventory.MaterialRepository, eventBus shared.EventBus) *WarningService {
	return &WarningService{
		warningRepo:  warningRepo,
		materialRepo: materialRepo,
		eventBus:     eventBus,
	}
}

// List retrieves a paginated warning list
func (s *WarningService) List(ctx context.Context, filter WarningListFilter) ([]WarningResponse, int64, error) {
	domainFilter := inventory.WarningFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		WarningType: filter.WarningType,
		Level:       filter.Level,
		Status:      filter.Status,
	}
	domainFilter.Normalize()

	total, err := s.warningRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	warnings, err := s.warningRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WarningResponse, 0, len(warnings))
	for i := range warnings {
		responses = append(responses, ToWarningResponse(&warnings[i]))
	}

	return responses, total, nil
}

// Statistics returns warning counts grouped by type, level and status
func (s *WarningService) Statistics(ctx context.Context) (*WarningStatisticsResponse, error) {
	stats, err := s.warningRepo.CountGrouped(ctx)
	if err != nil {
		return nil, err
	}

	return &WarningStatisticsResponse{
		Total:    stats.Total,
		Pending:  stats.Pending,
		Resolved: stats.Resolved,
		Low:      stats.Low,
		High:     stats.High,
		Warning:  stats.Warning,
		Danger:   stats.Danger,
	}, nil
}

// Check sweeps every active material, raising warnings for materials
// outside their band and resolving warnings for recovered ones. The sweep
// is idempotent: running it twice in a row changes nothing the second time.
func (s *WarningService) Check(ctx context.Context) (*WarningCheckResult, error) {
	materials, err := s.materialRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	result := WarningCheckResult{Checked: len(materials)}
	for i := range materials {
		raised, resolved, err := s.evaluate(ctx, &materials[i])
		if err != nil {
			return nil, err
		}
		if raised {
			result.Raised++
		}
		if resolved {
			result.Resolved++
		}
	}

	return &result, nil
}

// CheckMaterial re-evaluates the warning state of one material
func (s *WarningService) CheckMaterial(ctx context.Context, materialID int64) error {
	m, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return err
	}

	_, _, err = s.evaluate(ctx, m)
	return err
}

// evaluate reconciles one material's pending warning with its current
// stock. At most one pending warning exists per material.
func (s *WarningService) evaluate(ctx context.Context, m *inventory.Material) (raised, resolved bool, err error) {
	pending, err := s.warningRepo.FindPendingByMaterial(ctx, m.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return false, false, err
	}

	warningType, level, triggered := inventory.EvaluateMaterial(m)

	if !triggered || !m.IsActive() {
		if pending == nil {
			return false, false, nil
		}
		if err := pending.Resolve(); err != nil {
			return false, false, err
		}
		if err := s.warningRepo.Save(ctx, pending); err != nil {
			return false, false, err
		}
		s.publishEvents(ctx, pending)
		return false, true, nil
	}

	if pending != nil {
		if pending.WarningType == warningType && pending.Level == level && pending.CurrentStock == m.CurrentStock {
			return false, false, nil
		}
		if err := pending.Refresh(m, warningType, level); err != nil {
			return false, false, err
		}
		return false, false, s.warningRepo.Save(ctx, pending)
	}

	w := inventory.NewStockWarning(m, warningType, level)
	if err := s.warningRepo.Save(ctx, w); err != nil {
		return false, false, err
	}
	s.publishEvents(ctx, w)
	return true, false, nil
}

// publishEvents publishes domain events from the aggregate
func (s *WarningService) publishEvents(ctx context.Context, w *inventory.StockWarning) {
	if s.eventBus == nil {
		return
	}

	for _, event := range w.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	w.ClearDomainEvents()
}

var _ WarningChecker = (*WarningService)(nil)
