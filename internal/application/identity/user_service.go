package identity

import (
	"context"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

// UserService provides administrative account management
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	eventBus shared.EventBus
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, eventBus shared.EventBus) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		eventBus: eventBus,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}

// List retrieves a paginated user list
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
		},
		Status: filter.Status,
	}
	domainFilter.Normalize()

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}

	return responses, total, nil
}

// Create creates an account with an initial role set
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
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

	if len(req.RoleIDs) > 0 {
		if err := s.validateRoles(ctx, req.RoleIDs); err != nil {
			return nil, err
		}
		u.SetRoles(req.RoleIDs)
	}

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, u)

	response := ToUserResponse(u)
	return &response, nil
}

// Update edits an account's profile and role set
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateProfile(req.DisplayName, req.Email); err != nil {
		return nil, err
	}

	if req.RoleIDs != nil {
		if err := s.validateRoles(ctx, req.RoleIDs); err != nil {
			return nil, err
		}
		u.SetRoles(req.RoleIDs)
	}

	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	response := ToUserResponse(u)
	return &response, nil
}

// ResetPassword sets a new password without the old one (admin action)
func (s *UserService) ResetPassword(ctx context.Context, id int64, req ResetPasswordRequest) error {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.SetPassword(req.NewPassword); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, u)
}

// Deactivate disables an account
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.Deactivate(); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, u)
}

// Activate re-enables an account
func (s *UserService) Activate(ctx context.Context, id int64) error {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.Activate(); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, u)
}

// Roles lists all roles
func (s *UserService) Roles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		responses = append(responses, ToRoleResponse(&roles[i]))
	}

	return responses, nil
}

// validateRoles checks that every role ID exists
func (s *UserService) validateRoles(ctx context.Context, roleIDs []int64) error {
	for _, id := range roleIDs {
		if _, err := s.roleRepo.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// publishEvents publishes domain events from the aggregate
func (s *UserService) publishEvents(ctx context.Context, u *identity.User) {
	if s.eventBus == nil {
		return
	}

	for _, event := range u.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	u.ClearDomainEvents()
}
