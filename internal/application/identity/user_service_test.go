package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with roles", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		role := seedRole(t, roles, "keeper", "stocks:read")
		svc := NewUserService(users, roles, nil)

		resp, err := svc.Create(ctx, CreateUserRequest{
			Username: "carol", Password: "secret1", DisplayName: "Carol",
			RoleIDs: []int64{role.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{role.ID}, resp.RoleIDs)

		codes, err := users.PermissionCodes(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"stocks:read"}, codes)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		svc := NewUserService(users, roles, nil)

		_, err := svc.Create(ctx, CreateUserRequest{
			Username: "carol", Password: "secret1", RoleIDs: []int64{42},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		seedUser(t, users, "carol", "secret1")
		svc := NewUserService(users, roles, nil)

		_, err := svc.Create(ctx, CreateUserRequest{Username: "carol", Password: "secret1"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	reader := seedRole(t, roles, "reader", "stocks:read")
	writer := seedRole(t, roles, "writer", "stocks:write")
	u := seedUser(t, users, "carol", "secret1", reader.ID)
	svc := NewUserService(users, roles, nil)

	t.Run("replaces the role set", func(t *testing.T) {
		resp, err := svc.Update(ctx, u.ID, UpdateUserRequest{
			DisplayName: "Carol D", RoleIDs: []int64{writer.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "Carol D", resp.DisplayName)
		assert.Equal(t, []int64{writer.ID}, resp.RoleIDs)

		codes, err := users.PermissionCodes(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"stocks:write"}, codes)
	})

	t.Run("nil role IDs leave roles untouched", func(t *testing.T) {
		resp, err := svc.Update(ctx, u.ID, UpdateUserRequest{DisplayName: "Carol E"})
		require.NoError(t, err)
		assert.Equal(t, []int64{writer.ID}, resp.RoleIDs)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, UpdateUserRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserServiceResetPassword(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	u := seedUser(t, users, "carol", "secret1")
	svc := NewUserService(users, roles, nil)

	require.NoError(t, svc.ResetPassword(ctx, u.ID, ResetPasswordRequest{NewPassword: "fresh99"}))

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.VerifyPassword("secret1"))
	assert.True(t, stored.VerifyPassword("fresh99"))
}

func TestUserServiceActivation(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	u := seedUser(t, users, "carol", "secret1")
	svc := NewUserService(users, roles, nil)

	require.NoError(t, svc.Deactivate(ctx, u.ID))
	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.UserStatusInactive, stored.Status)

	// deactivating twice is an invalid transition
	err = svc.Deactivate(ctx, u.ID)
	assert.Error(t, err)

	require.NoError(t, svc.Activate(ctx, u.ID))
	stored, err = users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.UserStatusActive, stored.Status)
}

func TestUserServiceList(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	seedUser(t, users, "alice", "secret1")
	bob := seedUser(t, users, "bob", "secret1")
	require.NoError(t, bob.Deactivate())
	require.NoError(t, users.Save(ctx, bob))
	svc := NewUserService(users, roles, nil)

	t.Run("all users", func(t *testing.T) {
		list, total, err := svc.List(ctx, UserListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		status := identity.UserStatusActive
		list, total, err := svc.List(ctx, UserListFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "alice", list[0].Username)
	})
}

func TestUserServiceRoles(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	seedRole(t, roles, "reader", "stocks:read")
	seedRole(t, roles, "admin", "users:write", "users:read")
	svc := NewUserService(users, roles, nil)

	list, err := svc.Roles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "reader", list[0].Name)
	assert.Contains(t, list[1].Permissions, "users:write")
}
