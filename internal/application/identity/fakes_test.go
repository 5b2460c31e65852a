package identity

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

// memUserRepo is an in-memory identity.UserRepository for service tests.
type memUserRepo struct {
	users  map[int64]*identity.User
	roles  *memRoleRepo
	nextID int64
}

func newMemUserRepo(roles *memRoleRepo) *memUserRepo {
	return &memUserRepo{users: map[int64]*identity.User{}, roles: roles, nextID: 1}
}

func cloneUser(u *identity.User) *identity.User {
	c := *u
	c.RoleIDs = append([]int64(nil), u.RoleIDs...)
	return &c
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	matched := r.match(filter)
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit()
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]identity.User, 0, end-start)
	for _, u := range matched[start:end] {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	return int64(len(r.match(filter))), nil
}

func (r *memUserRepo) match(filter identity.UserFilter) []*identity.User {
	var matched []*identity.User
	for _, u := range r.users {
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(u.Username, filter.Search) &&
			!strings.Contains(u.DisplayName, filter.Search) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memUserRepo) Save(ctx context.Context, u *identity.User) error {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memUserRepo) PermissionCodes(ctx context.Context, userID int64) ([]string, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	seen := map[string]bool{}
	var codes []string
	for _, roleID := range u.RoleIDs {
		role, ok := r.roles.roles[roleID]
		if !ok {
			continue
		}
		for _, p := range role.Permissions {
			if !seen[p.Code] {
				seen[p.Code] = true
				codes = append(codes, p.Code)
			}
		}
	}
	sort.Strings(codes)
	return codes, nil
}

// memRoleRepo is an in-memory identity.RoleRepository.
type memRoleRepo struct {
	roles  map[int64]*identity.Role
	nextID int64
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: map[int64]*identity.Role{}, nextID: 1}
}

func (r *memRoleRepo) FindByID(ctx context.Context, id int64) (*identity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c := *role
	return &c, nil
}

func (r *memRoleRepo) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			c := *role
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRoleRepo) FindAll(ctx context.Context) ([]identity.Role, error) {
	out := make([]identity.Role, 0, len(r.roles))
	var ids []int64
	for id := range r.roles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		out = append(out, *r.roles[id])
	}
	return out, nil
}

func (r *memRoleRepo) Save(ctx context.Context, role *identity.Role) error {
	if role.ID == 0 {
		role.ID = r.nextID
		r.nextID++
	}
	c := *role
	r.roles[role.ID] = &c
	return nil
}

// stubTokenIssuer returns a fixed token for any user.
type stubTokenIssuer struct {
	token     string
	expiresAt time.Time
	err       error

	lastUserID      int64
	lastPermissions []string
}

func (s *stubTokenIssuer) Issue(userID int64, username string, permissions []string) (string, time.Time, error) {
	s.lastUserID = userID
	s.lastPermissions = permissions
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token, s.expiresAt, nil
}
