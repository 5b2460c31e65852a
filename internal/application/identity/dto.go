package identity

import (
	"time"

	"github.com/wims/backend/internal/domain/identity"
)

// ===================== Request DTOs =====================

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a self-service registration
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest represents a password change by the account owner
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// CreateUserRequest represents an admin creating an account
type CreateUserRequest struct {
	Username    string  `json:"username" binding:"required,min=3,max=50"`
	Password    string  `json:"password" binding:"required,min=6,max=72"`
	DisplayName string  `json:"display_name" binding:"max=200"`
	Email       string  `json:"email" binding:"omitempty,email"`
	RoleIDs     []int64 `json:"role_ids"`
}

// UpdateUserRequest represents an admin editing an account
type UpdateUserRequest struct {
	DisplayName string  `json:"display_name" binding:"max=200"`
	Email       string  `json:"email" binding:"omitempty,email"`
	RoleIDs     []int64 `json:"role_ids"`
}

// ResetPasswordRequest represents an admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UserListFilter represents filter options for the user list
type UserListFilter struct {
	Search   string               `form:"search"`
	Status   *identity.UserStatus `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int                  `form:"page"`
	PageSize int                  `form:"page_size"`
}

// ===================== Response DTOs =====================

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Status      string     `json:"status"`
	RoleIDs     []int64    `json:"role_ids"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IsSystem    bool     `json:"is_system"`
	Permissions []string `json:"permissions"`
}

// ToUserResponse converts a user to its response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Status:      string(u.Status),
		RoleIDs:     u.RoleIDs,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToRoleResponse converts a role to its response DTO
func ToRoleResponse(r *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: r.PermissionCodes(),
	}
}
