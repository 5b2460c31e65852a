package identity

// Permission codes guarded by the HTTP layer, following the
// "module:action" convention.
const (
	PermStocksRead  = "stocks:read"
	PermStocksWrite = "stocks:write"

	PermCountRead  = "stock_count:read"
	PermCountWrite = "stock_count:write"

	PermWarningsRead  = "warnings:read"
	PermWarningsCheck = "warnings:check"

	PermReportsRead = "reports:read"

	PermUsersManage = "users:manage"
)

// AllPermissions lists every permission code known to the system
var AllPermissions = []string{
	PermStocksRead,
	PermStocksWrite,
	PermCountRead,
	PermCountWrite,
	PermWarningsRead,
	PermWarningsCheck,
	PermReportsRead,
	PermUsersManage,
}
