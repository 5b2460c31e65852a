package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/inventory"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos inventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Materials returns the material repository scoped to the current transaction
func (r *gormTransactionalRepositories) Materials() inventory.MaterialRepository {
	return NewGormMaterialRepository(r.tx)
}

// Movements returns the movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// CountTasks returns the count task repository scoped to the current transaction
func (r *gormTransactionalRepositories) CountTasks() inventory.CountTaskRepository {
	return NewGormCountTaskRepository(r.tx)
}

// Warnings returns the warning repository scoped to the current transaction
func (r *gormTransactionalRepositories) Warnings() inventory.StockWarningRepository {
	return NewGormStockWarningRepository(r.tx)
}

var _ inventory.TransactionScope = (*GormTransactionScope)(nil)
var _ inventory.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
