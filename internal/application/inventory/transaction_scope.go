package inventory

import (
	"context"

	"github.com/wims/backend/internal/domain/inventory"
)

// NoOpTransactionScope runs the scoped function against plain repositories
// without a surrounding database transaction. Used in tests and wherever
// transactional guarantees are not required.
type NoOpTransactionScope struct {
	materialRepo inventory.MaterialRepository
	movementRepo inventory.StockMovementRepository
	taskRepo     inventory.CountTaskRepository
	warningRepo  inventory.StockWarningRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	materialRepo inventory.MaterialRepository,
	movementRepo inventory.StockMovementRepository,
	taskRepo inventory.CountTaskRepository,
	warningRepo inventory.StockWarningRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		taskRepo:     taskRepo,
		warningRepo:  warningRepo,
	}
}

// Execute runs fn directly against the underlying repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos inventory.TransactionalRepositories) error) error {
	return fn(s)
}

// Materials returns the material repository
func (s *NoOpTransactionScope) Materials() inventory.MaterialRepository {
	return s.materialRepo
}

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movementRepo
}

// CountTasks returns the count task repository
func (s *NoOpTransactionScope) CountTasks() inventory.CountTaskRepository {
	return s.taskRepo
}

// Warnings returns the stock warning repository
func (s *NoOpTransactionScope) Warnings() inventory.StockWarningRepository {
	return s.warningRepo
}

var _ inventory.TransactionScope = (*NoOpTransactionScope)(nil)
var _ inventory.TransactionalRepositories = (*NoOpTransactionScope)(nil)
