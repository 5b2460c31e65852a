package inventory

import (
	"github.com/shopspring/decimal"
)

// OverviewResponse is the statistics dashboard payload
type OverviewResponse struct {
	MaterialCount   int64            `json:"material_count"`
	TotalStock      int64            `json:"total_stock"`
	TotalValue      decimal.Decimal  `json:"total_value"`
	StatusCounts    map[string]int64 `json:"status_counts"`
	TodayIn         FlowSummary      `json:"today_in"`
	TodayOut        FlowSummary      `json:"today_out"`
	PendingWarnings int64            `json:"pending_warnings"`
}

// FlowSummary aggregates one direction of movement over a window
type FlowSummary struct {
	Qty   int64           `json:"qty"`
	Value decimal.Decimal `json:"value"`
}

// TrendPoint is one day in the in/out trend series
type TrendPoint struct {
	Date     string          `json:"date"`
	InQty    int64           `json:"in_qty"`
	InValue  decimal.Decimal `json:"in_value"`
	OutQty   int64           `json:"out_qty"`
	OutValue decimal.Decimal `json:"out_value"`
}

// RankingEntry is one material in a movement ranking
type RankingEntry struct {
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	Qty          int64           `json:"qty"`
	Value        decimal.Decimal `json:"value"`
}

// CategoryEntry aggregates the ledger for one category
type CategoryEntry struct {
	Category   string          `json:"category"`
	Materials  int64           `json:"materials"`
	TotalStock int64           `json:"total_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// MonthlySummary is one month's aggregated in/out movement
type MonthlySummary struct {
	Month    string          `json:"month"`
	InQty    int64           `json:"in_qty"`
	InValue  decimal.Decimal `json:"in_value"`
	OutQty   int64           `json:"out_qty"`
	OutValue decimal.Decimal `json:"out_value"`
}

// MonthlyDetailEntry is one material's movement and closing stock in a month
type MonthlyDetailEntry struct {
	MaterialCode string `json:"material_code"`
	MaterialName string `json:"material_name"`
	Unit         string `json:"unit"`
	InQty        int64  `json:"in_qty"`
	OutQty       int64  `json:"out_qty"`
	ClosingStock int64  `json:"closing_stock"`
}

// MonthlyReportResponse is the monthly report payload
type MonthlyReportResponse struct {
	Months  []MonthlySummary     `json:"months"`
	Details []MonthlyDetailEntry `json:"details,omitempty"`
}
