package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// MaterialFilter extends shared.Filter with material-specific filters
type MaterialFilter struct {
	shared.Filter
	Category    string
	Supplier    string
	Status      *MaterialStatus
	StockStatus *StockStatus
}

// MaterialRepository defines the interface for material persistence
type MaterialRepository interface {
	// FindByID finds a material by its ID
	FindByID(ctx context.Context, id int64) (*Material, error)

	// FindByCode finds a material by its unique code
	FindByCode(ctx context.Context, code string) (*Material, error)

	// FindActive returns all active materials ordered by code
	FindActive(ctx context.Context) ([]Material, error)

	// FindAll finds materials matching the filter
	FindAll(ctx context.Context, filter MaterialFilter) ([]Material, error)

	// Count counts materials matching the filter
	Count(ctx context.Context, filter MaterialFilter) (int64, error)

	// ExistsByCode checks if a material code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a material
	Save(ctx context.Context, m *Material) error

	// ApplyDelta atomically adjusts current stock and stock value in place.
	// Returns shared.ErrInsufficientStock if the delta would drive the
	// stock negative and shared.ErrNotFound for an unknown material.
	ApplyDelta(ctx context.Context, materialID int64, qty int64, value decimal.Decimal) error
}

// MovementFilter extends shared.Filter with movement-specific filters
type MovementFilter struct {
	shared.Filter
	Direction    *MovementDirection
	MovementType *MovementType
	BillNo       string
	Operator     string
	StartTime    *time.Time
	EndTime      *time.Time
}

// StockMovementRepository defines the interface for transaction log persistence
type StockMovementRepository interface {
	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id int64) (*StockMovement, error)

	// FindByBillNo finds a movement by its bill number
	FindByBillNo(ctx context.Context, billNo string) (*StockMovement, error)

	// FindAll finds movements matching the filter
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter MovementFilter) (int64, error)

	// Save creates or updates a movement
	Save(ctx context.Context, sm *StockMovement) error

	// GenerateBillNo generates the next bill number for the given prefix,
	// e.g. IN-20260831-0001
	GenerateBillNo(ctx context.Context, prefix string) (string, error)
}

// CountTaskFilter extends shared.Filter with count-task-specific filters
type CountTaskFilter struct {
	shared.Filter
	Status *CountTaskStatus
}

// CountTaskRepository defines the interface for count task persistence
type CountTaskRepository interface {
	// FindByID finds a count task with its items
	FindByID(ctx context.Context, id int64) (*CountTask, error)

	// FindByItemID finds the task owning the given item, with all items loaded
	FindByItemID(ctx context.Context, itemID int64) (*CountTask, error)

	// FindByTaskNo finds a count task by its task number
	FindByTaskNo(ctx context.Context, taskNo string) (*CountTask, error)

	// FindAll finds count tasks matching the filter, without items
	FindAll(ctx context.Context, filter CountTaskFilter) ([]CountTask, error)

	// Count counts count tasks matching the filter
	Count(ctx context.Context, filter CountTaskFilter) (int64, error)

	// ItemCounts returns total and counted item numbers per task ID
	ItemCounts(ctx context.Context, taskIDs []int64) (map[int64]ItemCountSummary, error)

	// Save creates or updates a count task together with its items
	Save(ctx context.Context, t *CountTask) error

	// SaveItem persists a single item update
	SaveItem(ctx context.Context, item *CountItem) error

	// GenerateTaskNo generates the next task number, e.g. SC-20260831-0001
	GenerateTaskNo(ctx context.Context) (string, error)
}

// ItemCountSummary carries per-task item totals for list views
type ItemCountSummary struct {
	ItemCount    int
	CountedCount int
}

// WarningFilter extends shared.Filter with warning-specific filters
type WarningFilter struct {
	shared.Filter
	WarningType *WarningType
	Level       *WarningLevel
	Status      *WarningStatus
}

// StockWarningRepository defines the interface for warning persistence
type StockWarningRepository interface {
	// FindByID finds a warning by its ID
	FindByID(ctx context.Context, id int64) (*StockWarning, error)

	// FindPendingByMaterial finds the pending warning for a material, if any
	FindPendingByMaterial(ctx context.Context, materialID int64) (*StockWarning, error)

	// FindAll finds warnings matching the filter
	FindAll(ctx context.Context, filter WarningFilter) ([]StockWarning, error)

	// Count counts warnings matching the filter
	Count(ctx context.Context, filter WarningFilter) (int64, error)

	// CountGrouped returns warning counts grouped by type, level and status
	CountGrouped(ctx context.Context) (WarningStatistics, error)

	// Save creates or updates a warning
	Save(ctx context.Context, w *StockWarning) error
}

// WarningStatistics aggregates warning counts for the statistics endpoint
type WarningStatistics struct {
	Total    int64
	Pending  int64
	Resolved int64
	Low      int64
	High     int64
	Warning  int64
	Danger   int64
}

// DayFlow is one day's aggregated in/out movement
type DayFlow struct {
	Day      time.Time
	InQty    int64
	InValue  decimal.Decimal
	OutQty   int64
	OutValue decimal.Decimal
}

// MonthFlow is one month's aggregated in/out movement
type MonthFlow struct {
	Year     int
	Month    int
	InQty    int64
	InValue  decimal.Decimal
	OutQty   int64
	OutValue decimal.Decimal
}

// RankEntry is one material's aggregated movement for ranking views
type RankEntry struct {
	MaterialCode string
	MaterialName string
	Qty          int64
	Value        decimal.Decimal
}

// CategoryAgg aggregates stock holdings per material category
type CategoryAgg struct {
	Category   string
	Materials  int64
	TotalStock int64
	TotalValue decimal.Decimal
}

// MaterialMonthDetail is one material's movement and closing stock in a month
type MaterialMonthDetail struct {
	MaterialCode string
	MaterialName string
	Unit         string
	InQty        int64
	OutQty       int64
	ClosingStock int64
}

// StockTotals aggregates the whole ledger
type StockTotals struct {
	MaterialCount int64
	TotalStock    int64
	TotalValue    decimal.Decimal
}

// StatsRepository defines the aggregate queries behind statistics and reports
type StatsRepository interface {
	// StockTotals sums the active ledger
	StockTotals(ctx context.Context) (StockTotals, error)

	// StatusDistribution counts active materials per stock status
	StatusDistribution(ctx context.Context) (map[StockStatus]int64, error)

	// FlowBetween aggregates normal movements in a time window
	FlowBetween(ctx context.Context, start, end time.Time) (DayFlow, error)

	// DailyFlows aggregates normal movements per day over the window
	DailyFlows(ctx context.Context, start, end time.Time) ([]DayFlow, error)

	// MonthlyFlows aggregates normal movements per month over the window
	MonthlyFlows(ctx context.Context, start, end time.Time) ([]MonthFlow, error)

	// TopMaterials ranks materials by moved quantity for one direction
	TopMaterials(ctx context.Context, direction MovementDirection, start, end time.Time, limit int) ([]RankEntry, error)

	// CategoryAggregates aggregates the active ledger per category
	CategoryAggregates(ctx context.Context) ([]CategoryAgg, error)

	// MonthDetails lists per-material movement and closing stock for a month
	MonthDetails(ctx context.Context, start, end time.Time) ([]MaterialMonthDetail, error)
}

// TransactionalRepositories bundles the repositories that participate in a
// single database transaction
type TransactionalRepositories interface {
	Materials() MaterialRepository
	Movements() StockMovementRepository
	CountTasks() CountTaskRepository
	Warnings() StockWarningRepository
}

// TransactionScope executes a function within one database transaction.
// The function receives repositories bound to that transaction; returning
// an error rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
