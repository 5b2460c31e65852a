package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/infrastructure/persistence/models"
)

// GormMaterialRepository implements MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// FindByID finds a material by its ID
func (r *GormMaterialRepository) FindByID(ctx context.Context, id int64) (*inventory.Material, error) {
	var model models.MaterialModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a material by its unique code
func (r *GormMaterialRepository) FindByCode(ctx context.Context, code string) (*inventory.Material, error) {
	var model models.MaterialModel
	if err := r.db.WithContext(ctx).First(&model, "material_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns all active materials ordered by code
func (r *GormMaterialRepository) FindActive(ctx context.Context) ([]inventory.Material, error) {
	var matModels []models.MaterialModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", inventory.MaterialStatusActive).
		Order("material_code ASC").
		Find(&matModels).Error; err != nil {
		return nil, err
	}
	return toMaterials(matModels), nil
}

// FindAll finds materials matching the filter
func (r *GormMaterialRepository) FindAll(ctx context.Context, filter inventory.MaterialFilter) ([]inventory.Material, error) {
	var matModels []models.MaterialModel
	query := applySort(r.filtered(ctx, filter), filter.Filter, MaterialSortFields)
	if err := query.Find(&matModels).Error; err != nil {
		return nil, err
	}
	return toMaterials(matModels), nil
}

// Count counts materials matching the filter
func (r *GormMaterialRepository) Count(ctx context.Context, filter inventory.MaterialFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a material code is already taken
func (r *GormMaterialRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
		Where("material_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a material
func (r *GormMaterialRepository) Save(ctx context.Context, mat *inventory.Material) error {
	model := models.MaterialModelFromDomain(mat)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	mat.ID = model.ID
	return nil
}

// ApplyDelta atomically adjusts current stock and stock value in place.
// The stock check runs inside the UPDATE so concurrent writers cannot
// drive the stock negative.
func (r *GormMaterialRepository) ApplyDelta(ctx context.Context, materialID int64, qty int64, value decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
		Where("id = ? AND current_stock + ? >= 0", materialID, qty).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", qty),
			"stock_value":   gorm.Expr("GREATEST(stock_value + ?, 0)", value),
			"updated_at":    gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
			Where("id = ?", materialID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// filtered builds the base query for the given filter
func (r *GormMaterialRepository) filtered(ctx context.Context, filter inventory.MaterialFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.MaterialModel{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier = ?", filter.Supplier)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StockStatus != nil {
		switch *filter.StockStatus {
		case inventory.StockStatusLow:
			query = query.Where("min_stock > 0 AND current_stock <= min_stock")
		case inventory.StockStatusHigh:
			query = query.Where("max_stock > 0 AND current_stock >= max_stock AND NOT (min_stock > 0 AND current_stock <= min_stock)")
		case inventory.StockStatusNormal:
			query = query.Where("NOT (min_stock > 0 AND current_stock <= min_stock) AND NOT (max_stock > 0 AND current_stock >= max_stock)")
		}
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(material_code) LIKE ? OR LOWER(material_name) LIKE ?", pattern, pattern)
	}
	return query
}

func toMaterials(matModels []models.MaterialModel) []inventory.Material {
	materials := make([]inventory.Material, len(matModels))
	for i := range matModels {
		materials[i] = *matModels[i].ToDomain()
	}
	return materials
}

var _ inventory.MaterialRepository = (*GormMaterialRepository)(nil)
