package identity

import (
	"strings"
	"time"

	"github.com/wims/backend/internal/domain/shared"
)

// Permission is a value object naming one guarded action as "module:action",
// e.g. "stock_count:create"
type Permission struct {
	Code   string
	Module string
	Action string
}

// NewPermissionFromCode parses a "module:action" code
func NewPermissionFromCode(code string) (Permission, error) {
	parts := strings.SplitN(strings.TrimSpace(code), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, shared.NewValidationError("Permission code must be in 'module:action' format")
	}
	module := strings.ToLower(parts[0])
	action := strings.ToLower(parts[1])
	return Permission{
		Code:   module + ":" + action,
		Module: module,
		Action: action,
	}, nil
}

// Role is the aggregate root for permission bundles
type Role struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	IsSystem    bool
	Permissions []Permission
}

// NewRole creates a new role
func NewRole(name, description string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Role name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("Role name cannot exceed 100 characters")
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Permissions:       make([]Permission, 0),
	}, nil
}

// Grant adds a permission to the role, ignoring duplicates
func (r *Role) Grant(code string) error {
	perm, err := NewPermissionFromCode(code)
	if err != nil {
		return err
	}
	for _, p := range r.Permissions {
		if p.Code == perm.Code {
			return nil
		}
	}

	r.Permissions = append(r.Permissions, perm)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Revoke removes a permission from the role
func (r *Role) Revoke(code string) error {
	for i, p := range r.Permissions {
		if p.Code == code {
			r.Permissions = append(r.Permissions[:i], r.Permissions[i+1:]...)
			r.UpdatedAt = time.Now()
			r.IncrementVersion()
			return nil
		}
	}
	return shared.NewNotFoundError("Role does not have this permission")
}

// SetPermissions replaces the role's permission set
func (r *Role) SetPermissions(codes []string) error {
	perms := make([]Permission, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		perm, err := NewPermissionFromCode(code)
		if err != nil {
			return err
		}
		if seen[perm.Code] {
			continue
		}
		seen[perm.Code] = true
		perms = append(perms, perm)
	}

	r.Permissions = perms
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// HasPermission checks if the role carries the permission code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// PermissionCodes returns the role's permission codes
func (r *Role) PermissionCodes() []string {
	codes := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		codes = append(codes, p.Code)
	}
	return codes
}
