package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/infrastructure/persistence/models"
)

// GormStockWarningRepository implements StockWarningRepository using GORM
type GormStockWarningRepository struct {
	db *gorm.DB
}

// NewGormStockWarningRepository creates a new GormStockWarningRepository
func NewGormStockWarningRepository(db *gorm.DB) *GormStockWarningRepository {
	return &GormStockWarningRepository{db: db}
}

// FindByID finds a warning by its ID
func (r *GormStockWarningRepository) FindByID(ctx context.Context, id int64) (*inventory.StockWarning, error) {
	var model models.StockWarningModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingByMaterial finds the pending warning for a material, if any
func (r *GormStockWarningRepository) FindPendingByMaterial(ctx context.Context, materialID int64) (*inventory.StockWarning, error) {
	var model models.StockWarningModel
	if err := r.db.WithContext(ctx).
		Where("material_id = ? AND status = ?", materialID, inventory.WarningStatusPending).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds warnings matching the filter
func (r *GormStockWarningRepository) FindAll(ctx context.Context, filter inventory.WarningFilter) ([]inventory.StockWarning, error) {
	var warningModels []models.StockWarningModel
	query := applySort(r.filtered(ctx, filter), filter.Filter, WarningSortFields)
	if err := query.Find(&warningModels).Error; err != nil {
		return nil, err
	}
	warnings := make([]inventory.StockWarning, len(warningModels))
	for i := range warningModels {
		warnings[i] = *warningModels[i].ToDomain()
	}
	return warnings, nil
}

// Count counts warnings matching the filter
func (r *GormStockWarningRepository) Count(ctx context.Context, filter inventory.WarningFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountGrouped returns warning counts grouped by type, level and status
func (r *GormStockWarningRepository) CountGrouped(ctx context.Context) (inventory.WarningStatistics, error) {
	var rows []struct {
		WarningType string
		Level       string
		Status      string
		Count       int64
	}
	err := r.db.WithContext(ctx).Model(&models.StockWarningModel{}).
		Select("warning_type, level, status, COUNT(*) AS count").
		Group("warning_type, level, status").
		Scan(&rows).Error
	if err != nil {
		return inventory.WarningStatistics{}, err
	}

	var stats inventory.WarningStatistics
	for _, row := range rows {
		stats.Total += row.Count
		switch inventory.WarningStatus(row.Status) {
		case inventory.WarningStatusPending:
			stats.Pending += row.Count
		case inventory.WarningStatusResolved:
			stats.Resolved += row.Count
		}
		switch inventory.WarningType(row.WarningType) {
		case inventory.WarningTypeLow:
			stats.Low += row.Count
		case inventory.WarningTypeHigh:
			stats.High += row.Count
		}
		switch inventory.WarningLevel(row.Level) {
		case inventory.WarningLevelWarning:
			stats.Warning += row.Count
		case inventory.WarningLevelDanger:
			stats.Danger += row.Count
		}
	}
	return stats, nil
}

// Save creates or updates a warning
func (r *GormStockWarningRepository) Save(ctx context.Context, w *inventory.StockWarning) error {
	model := models.StockWarningModelFromDomain(w)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	w.ID = model.ID
	return nil
}

// filtered builds the base query for the given filter
func (r *GormStockWarningRepository) filtered(ctx context.Context, filter inventory.WarningFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.StockWarningModel{})
	if filter.WarningType != nil {
		query = query.Where("warning_type = ?", *filter.WarningType)
	}
	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(material_code) LIKE ? OR LOWER(material_name) LIKE ?", pattern, pattern)
	}
	return query
}

var _ inventory.StockWarningRepository = (*GormStockWarningRepository)(nil)
