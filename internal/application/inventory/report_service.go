package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
)

// overviewCacheKey and TTL for the dashboard overview
const (
	overviewCacheKey = "stats:overview"
	overviewCacheTTL = 30 * time.Second
)

// Cache is a small read-through cache used for expensive dashboard queries
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a value with a TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ReportService serves statistics dashboards and monthly reports
type ReportService struct {
	statsRepo   inventory.StatsRepository
	warningRepo inventory.StockWarningRepository
	cache       Cache
}

// NewReportService creates a new ReportService. Cache may be nil, in which
// case every call hits the database.
func NewReportService(statsRepo inventory.StatsRepository, warningRepo inventory.StockWarningRepository, cache Cache) *ReportService {
	return &ReportService{
		statsRepo:   statsRepo,
		warningRepo: warningRepo,
		cache:       cache,
	}
}

// Overview builds the dashboard overview, served from cache when fresh
func (s *ReportService) Overview(ctx context.Context) (*OverviewResponse, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, overviewCacheKey); err == nil && ok {
			var resp OverviewResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	totals, err := s.statsRepo.StockTotals(ctx)
	if err != nil {
		return nil, err
	}

	distribution, err := s.statsRepo.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts := make(map[string]int64, len(distribution))
	for status, count := range distribution {
		statusCounts[string(status)] = count
	}

	dayStart := time.Now().Truncate(24 * time.Hour)
	today, err := s.statsRepo.FlowBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	pending := inventory.WarningStatusPending
	pendingCount, err := s.warningRepo.Count(ctx, inventory.WarningFilter{Status: &pending})
	if err != nil {
		return nil, err
	}

	resp := &OverviewResponse{
		MaterialCount:   totals.MaterialCount,
		TotalStock:      totals.TotalStock,
		TotalValue:      totals.TotalValue,
		StatusCounts:    statusCounts,
		TodayIn:         FlowSummary{Qty: today.InQty, Value: today.InValue},
		TodayOut:        FlowSummary{Qty: today.OutQty, Value: today.OutValue},
		PendingWarnings: pendingCount,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, overviewCacheKey, string(payload), overviewCacheTTL)
		}
	}

	return resp, nil
}

// Trend returns the per-day in/out series for the last N days
func (s *ReportService) Trend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		return nil, shared.NewValidationError("Trend window cannot exceed 90 days")
	}

	end := time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	flows, err := s.statsRepo.DailyFlows(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]inventory.DayFlow, len(flows))
	for _, f := range flows {
		byDay[f.Day.Format("2006-01-02")] = f
	}

	points := make([]TrendPoint, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		f := byDay[key]
		points = append(points, TrendPoint{
			Date:     key,
			InQty:    f.InQty,
			InValue:  f.InValue,
			OutQty:   f.OutQty,
			OutValue: f.OutValue,
		})
	}

	return points, nil
}

// Ranking returns the top materials by moved quantity for one direction
func (s *ReportService) Ranking(ctx context.Context, direction inventory.MovementDirection, days, limit int) ([]RankingEntry, error) {
	if !direction.IsValid() {
		return nil, shared.NewValidationError("Direction must be in or out")
	}
	if days <= 0 {
		days = 30
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	entries, err := s.statsRepo.TopMaterials(ctx, direction, start, end, limit)
	if err != nil {
		return nil, err
	}

	ranking := make([]RankingEntry, 0, len(entries))
	for _, e := range entries {
		ranking = append(ranking, RankingEntry{
			MaterialCode: e.MaterialCode,
			MaterialName: e.MaterialName,
			Qty:          e.Qty,
			Value:        e.Value,
		})
	}

	return ranking, nil
}

// Categories aggregates the active ledger per category
func (s *ReportService) Categories(ctx context.Context) ([]CategoryEntry, error) {
	aggs, err := s.statsRepo.CategoryAggregates(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]CategoryEntry, 0, len(aggs))
	for _, a := range aggs {
		category := a.Category
		if category == "" {
			category = "uncategorized"
		}
		entries = append(entries, CategoryEntry{
			Category:   category,
			Materials:  a.Materials,
			TotalStock: a.TotalStock,
			TotalValue: a.TotalValue,
		})
	}

	return entries, nil
}

// Monthly builds the last-12-months summary, plus per-material details for
// the requested month ("2006-01") when one is given.
func (s *ReportService) Monthly(ctx context.Context, month string) (*MonthlyReportResponse, error) {
	now := time.Now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	flows, err := s.statsRepo.MonthlyFlows(ctx, windowStart, now)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]inventory.MonthFlow, len(flows))
	for _, f := range flows {
		byMonth[fmt.Sprintf("%04d-%02d", f.Year, f.Month)] = f
	}

	months := make([]MonthlySummary, 0, 12)
	for m := windowStart; !m.After(now); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		f := byMonth[key]
		months = append(months, MonthlySummary{
			Month:    key,
			InQty:    f.InQty,
			InValue:  f.InValue,
			OutQty:   f.OutQty,
			OutValue: f.OutValue,
		})
	}

	resp := &MonthlyReportResponse{Months: months}

	if month != "" {
		monthStart, err := time.ParseInLocation("2006-01", month, now.Location())
		if err != nil {
			return nil, shared.NewValidationError("Month must be in YYYY-MM format")
		}

		details, err := s.statsRepo.MonthDetails(ctx, monthStart, monthStart.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}

		entries := make([]MonthlyDetailEntry, 0, len(details))
		for _, d := range details {
			entries = append(entries, MonthlyDetailEntry{
				MaterialCode: d.MaterialCode,
				MaterialName: d.MaterialName,
				Unit:         d.Unit,
				InQty:        d.InQty,
				OutQty:       d.OutQty,
				ClosingStock: d.ClosingStock,
			})
		}
		resp.Details = entries
	}

	return resp, nil
}
