package models

import (
	"time"

	"github.com/wims/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	DisplayName  string     `gorm:"type:varchar(200)"`
	Email        string     `gorm:"type:varchar(200)"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	LastLoginAt  *time.Time `gorm:""`
	// Associations
	Roles []UserRoleModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Email:             m.Email,
		Status:            identity.UserStatus(m.Status),
		LastLoginAt:       m.LastLoginAt,
		RoleIDs:           make([]int64, len(m.Roles)),
	}
	for i, r := range m.Roles {
		u.RoleIDs[i] = r.RoleID
	}
	return u
}

// UserModelFromDomain creates a persistence model from a domain User.
// Role memberships are persisted separately through UserRoleModel rows.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Email = u.Email
	m.Status = string(u.Status)
	m.LastLoginAt = u.LastLoginAt
	return m
}

// UserRoleModel is the persistence model for user role memberships.
type UserRoleModel struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	RoleID    int64     `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}

// RoleModel is the persistence model for the Role aggregate root.
type RoleModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
	IsSystem    bool   `gorm:"not null;default:false"`
	// Associations
	Permissions []RolePermissionModel `gorm:"foreignKey:RoleID;references:ID"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role
func (m *RoleModel) ToDomain() *identity.Role {
	r := &identity.Role{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		IsSystem:          m.IsSystem,
		Permissions:       make([]identity.Permission, len(m.Permissions)),
	}
	for i, p := range m.Permissions {
		r.Permissions[i] = identity.Permission{
			Code:   p.Code,
			Module: p.Module,
			Action: p.Action,
		}
	}
	return r
}

// RoleModelFromDomain creates a persistence model from a domain Role.
// Permissions are persisted separately through RolePermissionModel rows.
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Name = r.Name
	m.Description = r.Description
	m.IsSystem = r.IsSystem
	return m
}

// RolePermissionModel is the persistence model for role permission grants.
type RolePermissionModel struct {
	RoleID    int64     `gorm:"primaryKey;autoIncrement:false"`
	Code      string    `gorm:"type:varchar(100);primaryKey"`
	Module    string    `gorm:"type:varchar(50);not null"`
	Action    string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}
