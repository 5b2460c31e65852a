package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/infrastructure/persistence/models"
)

// GormStatsRepository implements StatsRepository with SQL aggregations over
// the materials and stock_movements tables
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GormStatsRepository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// StockTotals sums the active ledger
func (r *GormStatsRepository) StockTotals(ctx context.Context) (inventory.StockTotals, error) {
	var row struct {
		MaterialCount int64
		TotalStock    int64
		TotalValue    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
		Select("COUNT(*) AS material_count, COALESCE(SUM(current_stock), 0) AS total_stock, COALESCE(SUM(stock_value), 0) AS total_value").
		Where("status = ?", inventory.MaterialStatusActive).
		Scan(&row).Error
	if err != nil {
		return inventory.StockTotals{}, err
	}
	return inventory.StockTotals{
		MaterialCount: row.MaterialCount,
		TotalStock:    row.TotalStock,
		TotalValue:    row.TotalValue,
	}, nil
}

// StatusDistribution counts active materials per stock status
func (r *GormStatsRepository) StatusDistribution(ctx context.Context) (map[inventory.StockStatus]int64, error) {
	var row struct {
		Low    int64
		High   int64
		Normal int64
	}
	err := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
		Select(`
			COALESCE(SUM(CASE WHEN min_stock > 0 AND current_stock <= min_stock THEN 1 ELSE 0 END), 0) AS low,
			COALESCE(SUM(CASE WHEN max_stock > 0 AND current_stock >= max_stock AND NOT (min_stock > 0 AND current_stock <= min_stock) THEN 1 ELSE 0 END), 0) AS high,
			COALESCE(SUM(CASE WHEN NOT (min_stock > 0 AND current_stock <= min_stock) AND NOT (max_stock > 0 AND current_stock >= max_stock) THEN 1 ELSE 0 END), 0) AS normal`).
		Where("status = ?", inventory.MaterialStatusActive).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[inventory.StockStatus]int64{
		inventory.StockStatusLow:    row.Low,
		inventory.StockStatusHigh:   row.High,
		inventory.StockStatusNormal: row.Normal,
	}, nil
}

// flowSelect aggregates signed in/out quantity and value columns
const flowSelect = `
	COALESCE(SUM(CASE WHEN direction = 'in' THEN quantity ELSE 0 END), 0) AS in_qty,
	COALESCE(SUM(CASE WHEN direction = 'in' THEN value ELSE 0 END), 0) AS in_value,
	COALESCE(SUM(CASE WHEN direction = 'out' THEN quantity ELSE 0 END), 0) AS out_qty,
	COALESCE(SUM(CASE WHEN direction = 'out' THEN value ELSE 0 END), 0) AS out_value`

type flowRow struct {
	InQty    int64
	InValue  decimal.Decimal
	OutQty   int64
	OutValue decimal.Decimal
}

// FlowBetween aggregates normal movements in a time window
func (r *GormStatsRepository) FlowBetween(ctx context.Context, start, end time.Time) (inventory.DayFlow, error) {
	var row flowRow
	err := r.normalMovements(ctx, start, end).
		Select(flowSelect).
		Scan(&row).Error
	if err != nil {
		return inventory.DayFlow{}, err
	}
	return inventory.DayFlow{
		Day:      start,
		InQty:    row.InQty,
		InValue:  row.InValue,
		OutQty:   row.OutQty,
		OutValue: row.OutValue,
	}, nil
}

// DailyFlows aggregates normal movements per day over the window
func (r *GormStatsRepository) DailyFlows(ctx context.Context, start, end time.Time) ([]inventory.DayFlow, error) {
	var rows []struct {
		Day time.Time
		flowRow
	}
	err := r.normalMovements(ctx, start, end).
		Select("DATE_TRUNC('day', occurred_at) AS day, " + flowSelect).
		Group("DATE_TRUNC('day', occurred_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	flows := make([]inventory.DayFlow, len(rows))
	for i, row := range rows {
		flows[i] = inventory.DayFlow{
			Day:      row.Day,
			InQty:    row.InQty,
			InValue:  row.InValue,
			OutQty:   row.OutQty,
			OutValue: row.OutValue,
		}
	}
	return flows, nil
}

// MonthlyFlows aggregates normal movements per month over the window
func (r *GormStatsRepository) MonthlyFlows(ctx context.Context, start, end time.Time) ([]inventory.MonthFlow, error) {
	var rows []struct {
		Year  int
		Month int
		flowRow
	}
	err := r.normalMovements(ctx, start, end).
		Select("EXTRACT(YEAR FROM occurred_at)::int AS year, EXTRACT(MONTH FROM occurred_at)::int AS month, " + flowSelect).
		Group("EXTRACT(YEAR FROM occurred_at), EXTRACT(MONTH FROM occurred_at)").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	flows := make([]inventory.MonthFlow, len(rows))
	for i, row := range rows {
		flows[i] = inventory.MonthFlow{
			Year:     row.Year,
			Month:    row.Month,
			InQty:    row.InQty,
			InValue:  row.InValue,
			OutQty:   row.OutQty,
			OutValue: row.OutValue,
		}
	}
	return flows, nil
}

// TopMaterials ranks materials by moved quantity for one direction
func (r *GormStatsRepository) TopMaterials(ctx context.Context, direction inventory.MovementDirection, start, end time.Time, limit int) ([]inventory.RankEntry, error) {
	var rows []struct {
		MaterialCode string
		MaterialName string
		Qty          int64
		Value        decimal.Decimal
	}
	err := r.normalMovements(ctx, start, end).
		Select("material_code, material_name, COALESCE(SUM(quantity), 0) AS qty, COALESCE(SUM(value), 0) AS value").
		Where("direction = ?", direction).
		Group("material_code, material_name").
		Order("qty DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]inventory.RankEntry, len(rows))
	for i, row := range rows {
		entries[i] = inventory.RankEntry{
			MaterialCode: row.MaterialCode,
			MaterialName: row.MaterialName,
			Qty:          row.Qty,
			Value:        row.Value,
		}
	}
	return entries, nil
}

// CategoryAggregates aggregates the active ledger per category
func (r *GormStatsRepository) CategoryAggregates(ctx context.Context) ([]inventory.CategoryAgg, error) {
	var rows []struct {
		Category   string
		Materials  int64
		TotalStock int64
		TotalValue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.MaterialModel{}).
		Select("category, COUNT(*) AS materials, COALESCE(SUM(current_stock), 0) AS total_stock, COALESCE(SUM(stock_value), 0) AS total_value").
		Where("status = ?", inventory.MaterialStatusActive).
		Group("category").
		Order("total_value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggs := make([]inventory.CategoryAgg, len(rows))
	for i, row := range rows {
		aggs[i] = inventory.CategoryAgg{
			Category:   row.Category,
			Materials:  row.Materials,
			TotalStock: row.TotalStock,
			TotalValue: row.TotalValue,
		}
	}
	return aggs, nil
}

// MonthDetails lists per-material movement and closing stock for a month
func (r *GormStatsRepository) MonthDetails(ctx context.Context, start, end time.Time) ([]inventory.MaterialMonthDetail, error) {
	var rows []struct {
		MaterialCode string
		MaterialName string
		Unit         string
		InQty        int64
		OutQty       int64
		ClosingStock int64
	}
	err := r.db.WithContext(ctx).
		Table("materials AS m").
		Select(`m.material_code, m.material_name, m.unit,
			COALESCE(SUM(CASE WHEN sm.direction = 'in' THEN sm.quantity ELSE 0 END), 0) AS in_qty,
			COALESCE(SUM(CASE WHEN sm.direction = 'out' THEN sm.quantity ELSE 0 END), 0) AS out_qty,
			m.current_stock AS closing_stock`).
		Joins(`LEFT JOIN stock_movements sm ON sm.material_id = m.id
			AND sm.status = ? AND sm.occurred_at >= ? AND sm.occurred_at < ?`,
			inventory.MovementStatusNormal, start, end).
		Where("m.status = ?", inventory.MaterialStatusActive).
		Group("m.material_code, m.material_name, m.unit, m.current_stock").
		Order("m.material_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	details := make([]inventory.MaterialMonthDetail, len(rows))
	for i, row := range rows {
		details[i] = inventory.MaterialMonthDetail{
			MaterialCode: row.MaterialCode,
			MaterialName: row.MaterialName,
			Unit:         row.Unit,
			InQty:        row.InQty,
			OutQty:       row.OutQty,
			ClosingStock: row.ClosingStock,
		}
	}
	return details, nil
}

// normalMovements builds the base query over non-voided movements in a window
func (r *GormStatsRepository) normalMovements(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.StockMovementModel{}).
		Where("status = ? AND occurred_at >= ? AND occurred_at < ?",
			inventory.MovementStatusNormal, start, end)
}

var _ inventory.StatsRepository = (*GormStatsRepository)(nil)
