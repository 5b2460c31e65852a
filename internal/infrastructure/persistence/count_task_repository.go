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

// GormCountTaskRepository implements CountTaskRepository using GORM
type GormCountTaskRepository struct {
	db *gorm.DB
}

// NewGormCountTaskRepository creates a new GormCountTaskRepository
func NewGormCountTaskRepository(db *gorm.DB) *GormCountTaskRepository {
	return &GormCountTaskRepository{db: db}
}

// FindByID finds a count task with its items
func (r *GormCountTaskRepository) FindByID(ctx context.Context, id int64) (*inventory.CountTask, error) {
	var model models.CountTaskModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByItemID finds the task owning the given item, with all items loaded
func (r *GormCountTaskRepository) FindByItemID(ctx context.Context, itemID int64) (*inventory.CountTask, error) {
	var item models.CountItemModel
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, item.TaskID)
}

// FindByTaskNo finds a count task by its task number
func (r *GormCountTaskRepository) FindByTaskNo(ctx context.Context, taskNo string) (*inventory.CountTask, error) {
	var model models.CountTaskModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&model, "task_no = ?", taskNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds count tasks matching the filter, without items
func (r *GormCountTaskRepository) FindAll(ctx context.Context, filter inventory.CountTaskFilter) ([]inventory.CountTask, error) {
	var taskModels []models.CountTaskModel
	query := applySort(r.filtered(ctx, filter), filter.Filter, CountTaskSortFields)
	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}
	tasks := make([]inventory.CountTask, len(taskModels))
	for i := range taskModels {
		tasks[i] = *taskModels[i].ToDomain()
	}
	return tasks, nil
}

// Count counts count tasks matching the filter
func (r *GormCountTaskRepository) Count(ctx context.Context, filter inventory.CountTaskFilter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ItemCounts returns total and counted item numbers per task ID
func (r *GormCountTaskRepository) ItemCounts(ctx context.Context, taskIDs []int64) (map[int64]inventory.ItemCountSummary, error) {
	result := make(map[int64]inventory.ItemCountSummary, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		TaskID       int64
		ItemCount    int
		CountedCount int
	}
	err := r.db.WithContext(ctx).Model(&models.CountItemModel{}).
		Select("task_id, COUNT(*) AS item_count, COUNT(real_qty) AS counted_count").
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.TaskID] = inventory.ItemCountSummary{
			ItemCount:    row.ItemCount,
			CountedCount: row.CountedCount,
		}
	}
	return result, nil
}

// Save creates or updates a count task together with its items. Updates
// carry an optimistic lock: mutators bump the aggregate version before
// saving, and the update only matches a row still holding the version
// they read. A stale save therefore fails instead of overwriting a
// concurrently committed transition.
func (r *GormCountTaskRepository) Save(ctx context.Context, t *inventory.CountTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.CountTaskModelFromDomain(t)
		items := model.Items
		model.Items = nil

		if model.ID == 0 {
			if err := tx.Create(model).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return shared.ErrDuplicateNumber
				}
				return err
			}
		} else {
			res := tx.Model(&models.CountTaskModel{}).
				Where("id = ? AND version = ?", model.ID, model.Version-1).
				Select("*").Omit("id", "created_at").
				Updates(model)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return shared.ErrConcurrentModification
			}
		}
		t.ID = model.ID

		for i := range items {
			items[i].TaskID = model.ID
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
			t.Items[i].ID = items[i].ID
			t.Items[i].TaskID = model.ID
		}
		return nil
	})
}

// SaveItem persists a single item update
func (r *GormCountTaskRepository) SaveItem(ctx context.Context, item *inventory.CountItem) error {
	model := models.CountItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	item.ID = model.ID
	return nil
}

// GenerateTaskNo generates the next task number, e.g. SC-20260831-0001
func (r *GormCountTaskRepository) GenerateTaskNo(ctx context.Context) (string, error) {
	today := time.Now().Format("20060102")
	prefix := fmt.Sprintf("SC-%s-", today)

	var maxNumber string
	err := r.db.WithContext(ctx).Model(&models.CountTaskModel{}).
		Select("task_no").
		Where("task_no LIKE ?", prefix+"%").
		Order("task_no DESC").
		Limit(1).
		Pluck("task_no", &maxNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	seq := nextSequence(maxNumber)
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// filtered builds the base query for the given filter
func (r *GormCountTaskRepository) filtered(ctx context.Context, filter inventory.CountTaskFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.CountTaskModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(task_no) LIKE ? OR LOWER(created_by) LIKE ?", pattern, pattern)
	}
	return query
}

var _ inventory.CountTaskRepository = (*GormCountTaskRepository)(nil)
