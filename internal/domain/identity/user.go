package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/wims/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Password cost for bcrypt
const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

// User is the aggregate root for accounts. Role membership is stored in a
// join table and loaded by the repository.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	DisplayName  string
	Email        string
	Status       UserStatus
	RoleIDs      []int64
	LastLoginAt  *time.Time
}

// UserRole links a user to a role
type UserRole struct {
	UserID    int64
	RoleID    int64
	CreatedAt time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(username, password, displayName, email string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewValidationError("Username must be 3-50 lowercase letters, digits or underscores")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("Invalid email address")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to hash password")
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      hash,
		DisplayName:       strings.TrimSpace(displayName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Status:            UserStatusActive,
		RoleIDs:           make([]int64, 0),
	}

	u.AddDomainEvent(NewUserCreatedEvent(u))

	return u, nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewValidationError("Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IsActive returns true if the account may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// VerifyPassword checks the password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password before setting the new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewValidationError("Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without an old-password check (admin reset)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError(shared.CodeInternal, "Failed to hash password")
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// UpdateProfile updates display name and email
func (u *User) UpdateProfile(displayName, email string) error {
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewValidationError("Invalid email address")
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignRole adds a role to the user
func (u *User) AssignRole(roleID int64) error {
	if roleID <= 0 {
		return shared.NewValidationError("Role ID is required")
	}
	for _, id := range u.RoleIDs {
		if id == roleID {
			return shared.NewDomainError(shared.CodeAlreadyExists, "User already has this role")
		}
	}

	u.RoleIDs = append(u.RoleIDs, roleID)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RemoveRole removes a role from the user
func (u *User) RemoveRole(roleID int64) error {
	for i, id := range u.RoleIDs {
		if id == roleID {
			u.RoleIDs = append(u.RoleIDs[:i], u.RoleIDs[i+1:]...)
			u.UpdatedAt = time.Now()
			u.IncrementVersion()
			return nil
		}
	}
	return shared.NewNotFoundError("User does not have this role")
}

// SetRoles replaces the user's role set
func (u *User) SetRoles(roleIDs []int64) {
	u.RoleIDs = append([]int64(nil), roleIDs...)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Deactivate disables login for the account
func (u *User) Deactivate() error {
	if u.Status == UserStatusInactive {
		return shared.NewInvalidStateError("User is already inactive")
	}
	u.Status = UserStatusInactive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Activate re-enables the account
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewInvalidStateError("User is already active")
	}
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLogin stores the time of a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}
