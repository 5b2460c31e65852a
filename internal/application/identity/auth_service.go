package identity

import (
	"context"
	"time"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

// TokenIssuer issues signed access tokens for authenticated users
type TokenIssuer interface {
	// Issue creates a token carrying the user's identity and permissions.
	// Returns the signed token and its expiry.
	Issue(userID int64, username string, permissions []string) (string, time.Time, error)
}

// AuthService handles login, registration and profile operations
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	eventBus shared.EventBus
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, eventBus shared.EventBus) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		eventBus: eventBus,
	}
}

// Login authenticates a user and issues an access token. Unknown usernames
// and wrong passwords are reported identically.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !u.IsActive() || !u.VerifyPassword(req.Password) {
		return nil, shared.ErrUnauthorized
	}

	permissions, err := s.userRepo.PermissionCodes(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(u.ID, u.Username, permissions)
	if err != nil {
		return nil, err
	}

	u.RecordLogin()
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		User:        ToUserResponse(u),
		Permissions: permissions,
	}, nil
}

// Register creates a new account with no roles assigned
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username is already taken")
	}

	u, err := identity.NewUser(req.Username, req.Password, req.DisplayName, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, u)

	response := ToUserResponse(u)
	return &response, nil
}

// Profile returns the authenticated user's account
func (s *AuthService) Profile(ctx context.Context, userID int64) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}

// UpdateProfile edits the authenticated user's display name and email
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, displayName, email string) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateProfile(displayName, email); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}

// ChangePassword changes the authenticated user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, u)
}

// publishEvents publishes domain events from the aggregate
func (s *AuthService) publishEvents(ctx context.Context, u *identity.User) {
	if s.eventBus == nil {
		return
	}

	for _, event := range u.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	u.ClearDomainEvents()
}
