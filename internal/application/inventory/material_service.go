package inventory

import (
	"context"
	"fmt"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaterialService provides application services for the material ledger
type MaterialService struct {
	materialRepo inventory.MaterialRepository
	warnings     WarningChecker
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo inventory.MaterialRepository, warnings WarningChecker, eventBus shared.EventBus, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		warnings:     warnings,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// recheckWarnings re-evaluates a material's warning state after a saved
// change. The change is already durable, so a failed re-check is logged
// rather than reported as an operation failure.
func (s *MaterialService) recheckWarnings(ctx context.Context, materialID int64) {
	if err := s.warnings.CheckMaterial(ctx, materialID); err != nil {
		s.logger.Warn("Warning re-check failed after material change",
			zap.Int64("material_id", materialID),
			zap.Error(err))
	}
}

// GetByID retrieves a material by ID
func (s *MaterialService) GetByID(ctx context.Context, id int64) (*MaterialResponse, error) {
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToMaterialResponse(m)
	return &response, nil
}

// List retrieves a paginated material list
func (s *MaterialService) List(ctx context.Context, filter MaterialListFilter) ([]MaterialResponse, int64, error) {
	domainFilter := inventory.MaterialFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Category:    filter.Category,
		Supplier:    filter.Supplier,
		Status:      filter.Status,
		StockStatus: filter.StockStatus,
	}
	domainFilter.Normalize()

	total, err := s.materialRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	materials, err := s.materialRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMaterialResponses(materials), total, nil
}

// Init creates a material with its opening stock
func (s *MaterialService) Init(ctx context.Context, req InitMaterialRequest) (*MaterialResponse, error) {
	exists, err := s.materialRepo.ExistsByCode(ctx, req.MaterialCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("Material code %s already exists", req.MaterialCode))
	}

	m, err := inventory.NewMaterial(req.MaterialCode, req.MaterialName, req.Spec, req.Unit, req.Category, req.Supplier, req.UnitPrice, req.MinStock, req.MaxStock, req.InitialStock)
	if err != nil {
		return nil, err
	}

	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, m)

	s.recheckWarnings(ctx, m.ID)

	response := ToMaterialResponse(m)
	return &response, nil
}

// Update edits master data and thresholds of a material
func (s *MaterialService) Update(ctx context.Context, id int64, req UpdateMaterialRequest) (*MaterialResponse, error) {
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.UpdateInfo(req.MaterialName, req.Spec, req.Unit, req.Category, req.Supplier, req.UnitPrice); err != nil {
		return nil, err
	}
	if err := m.UpdateThresholds(req.MinStock, req.MaxStock); err != nil {
		return nil, err
	}

	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.recheckWarnings(ctx, m.ID)

	response := ToMaterialResponse(m)
	return &response, nil
}

// Deactivate removes a material from active stock operations
func (s *MaterialService) Deactivate(ctx context.Context, id int64) error {
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := m.Deactivate(); err != nil {
		return err
	}

	if err := s.materialRepo.Save(ctx, m); err != nil {
		return err
	}

	s.publishEvents(ctx, m)

	return nil
}

// Activate re-enables an inactive material
func (s *MaterialService) Activate(ctx context.Context, id int64) error {
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := m.Activate(); err != nil {
		return err
	}

	return s.materialRepo.Save(ctx, m)
}

// publishEvents publishes domain events from the aggregate
func (s *MaterialService) publishEvents(ctx context.Context, m *inventory.Material) {
	if s.eventBus == nil {
		return
	}

	for _, event := range m.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	m.ClearDomainEvents()
}
