package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/infrastructure/persistence/models"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role by ID with permissions loaded
func (r *GormRoleRepository) FindByID(ctx context.Context, id int64) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).
		Preload("Permissions").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a role by its unique name
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).
		Preload("Permissions").
		First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all roles
func (r *GormRoleRepository) FindAll(ctx context.Context) ([]identity.Role, error) {
	var roleModels []models.RoleModel
	if err := r.db.WithContext(ctx).
		Preload("Permissions").
		Order("id ASC").
		Find(&roleModels).Error; err != nil {
		return nil, err
	}
	roles := make([]identity.Role, len(roleModels))
	for i := range roleModels {
		roles[i] = *roleModels[i].ToDomain()
	}
	return roles, nil
}

// Save creates or updates a role together with its permissions
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RoleModelFromDomain(role)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		role.ID = model.ID

		if err := tx.Where("role_id = ?", model.ID).
			Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		for _, p := range role.Permissions {
			grant := models.RolePermissionModel{
				RoleID:    model.ID,
				Code:      p.Code,
				Module:    p.Module,
				Action:    p.Action,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
