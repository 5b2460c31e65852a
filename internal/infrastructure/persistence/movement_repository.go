package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/infrastructure/persistence/models"
)

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id int64) (*inventory.StockMovement, error) {
	var model models.StockMovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBillNo finds a movement by its bill number
func (r *GormStockMovementRepository) FindByBillNo(ctx context.Context, billNo string) (*inventory.StockMovement, error) {
	var model models.StockMovementModel
	if err := r.db.WithContext(ctx).First(&model, "bill_no = ?", billNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds movements matching the filter
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	var smModels []models.StockMovementModel
	query := applySort(r.filtered(ctx, filter), filter.Filter, MovementSortFields)
	if err := query.Find(&smModels).Error; err != nil {
		return nil, err
	}
	movements := make([]inventory.StockMovement, len(smModels))
	for i := range smModels {
		movements[i] = *smModels[i].ToDomain()
	}
	return movements, nil
}

// Count counts movements matching the filter
func (r *GormStockMovementRepository) Count(ctx context.Context, filter inventory.MovementFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a movement. A bill number that lost a race to
// a concurrent insert surfaces as ErrDuplicateNumber so callers can
// allocate a fresh one and retry.
func (r *GormStockMovementRepository) Save(ctx context.Context, sm *inventory.StockMovement) error {
	model := models.StockMovementModelFromDomain(sm)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateNumber
		}
		return err
	}
	sm.ID = model.ID
	return nil
}

// GenerateBillNo generates the next bill number for the given prefix,
// e.g. IN-20260831-0001
func (r *GormStockMovementRepository) GenerateBillNo(ctx context.Context, prefix string) (string, error) {
	today := time.Now().Format("20060102")
	billPrefix := fmt.Sprintf("%s-%s-", prefix, today)

	var maxNumber string
	err := r.db.WithContext(ctx).Model(&models.StockMovementModel{}).
		Select("bill_no").
		Where("bill_no LIKE ?", billPrefix+"%").
		Order("bill_no DESC").
		Limit(1).
		Pluck("bill_no", &maxNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	seq := nextSequence(maxNumber)
	return fmt.Sprintf("%s%04d", billPrefix, seq), nil
}

// nextSequence extracts the trailing sequence of a generated number and
// returns the next one, starting from 1
func nextSequence(maxNumber string) int {
	var seq int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) >= 3 {
			if _, err := fmt.Sscanf(parts[len(parts)-1], "%04d", &seq); err != nil {
				seq = 0
			}
		}
	}
	return seq + 1
}

// filtered builds the base query for the given filter
func (r *GormStockMovementRepository) filtered(ctx context.Context, filter inventory.MovementFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.StockMovementModel{})
	if filter.Direction != nil {
		query = query.Where("direction = ?", *filter.Direction)
	}
	if filter.MovementType != nil {
		query = query.Where("movement_type = ?", *filter.MovementType)
	}
	if filter.BillNo != "" {
		query = query.Where("bill_no = ?", filter.BillNo)
	}
	if filter.Operator != "" {
		query = query.Where("operator = ?", filter.Operator)
	}
	if filter.StartTime != nil {
		query = query.Where("occurred_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("occurred_at <= ?", *filter.EndTime)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(bill_no) LIKE ? OR LOWER(material_code) LIKE ? OR LOWER(material_name) LIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
