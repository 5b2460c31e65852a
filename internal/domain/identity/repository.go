package identity

import (
	"context"

	"github.com/wims/backend/internal/domain/shared"
)

// UserFilter extends shared.Filter with user-specific filters
type UserFilter struct {
	shared.Filter
	Status *UserStatus
	RoleID *int64
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID with role memberships loaded
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByUsername finds a user by username with role memberships loaded
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll finds users matching the filter
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)

	// Count counts users matching the filter
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// ExistsByUsername checks if a username is already taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save creates or updates a user together with its role memberships
	Save(ctx context.Context, u *User) error

	// PermissionCodes returns the union of permission codes across the
	// user's roles
	PermissionCodes(ctx context.Context, userID int64) ([]string, error)
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by ID with permissions loaded
	FindByID(ctx context.Context, id int64) (*Role, error)

	// FindByName finds a role by its unique name
	FindByName(ctx context.Context, name string) (*Role, error)

	// FindAll returns all roles
	FindAll(ctx context.Context) ([]Role, error)

	// Save creates or updates a role together with its permissions
	Save(ctx context.Context, r *Role) error
}
