package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wims/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// applySort applies validated ordering and pagination to a query
func applySort(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	order := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(fmt.Sprintf("%s %s", field, order)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

// MaterialSortFields contains allowed sort fields for materials
var MaterialSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"material_code": true,
	"material_name": true,
	"category":      true,
	"current_stock": true,
	"stock_value":   true,
	"status":        true,
}

// MovementSortFields contains allowed sort fields for stock movements
var MovementSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"bill_no":     true,
	"occurred_at": true,
	"quantity":    true,
	"value":       true,
}

// CountTaskSortFields contains allowed sort fields for count tasks
var CountTaskSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"task_no":      true,
	"status":       true,
	"completed_at": true,
}

// WarningSortFields contains allowed sort fields for stock warnings
var WarningSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"material_code": true,
	"level":         true,
	"status":        true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"status":        true,
	"last_login_at": true,
}
