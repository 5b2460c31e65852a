package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/shared"
)

func seedUser(t *testing.T, users *memUserRepo, username, password string, roleIDs ...int64) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, password, "", "")
	require.NoError(t, err)
	u.SetRoles(roleIDs)
	u.ClearDomainEvents()
	require.NoError(t, users.Save(context.Background(), u))
	return u
}

func seedRole(t *testing.T, roles *memRoleRepo, name string, permCodes ...string) *identity.Role {
	t.Helper()
	r, err := identity.NewRole(name, "")
	require.NoError(t, err)
	for _, code := range permCodes {
		require.NoError(t, r.Grant(code))
	}
	require.NoError(t, roles.Save(context.Background(), r))
	return r
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token with permissions", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		role := seedRole(t, roles, "keeper", "stocks:read", "stocks:write")
		seedUser(t, users, "alice", "secret1", role.ID)

		issuer := &stubTokenIssuer{token: "tok-123", expiresAt: time.Now().Add(time.Hour)}
		svc := NewAuthService(users, issuer, nil)

		resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "tok-123", resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
		assert.Equal(t, []string{"stocks:read", "stocks:write"}, resp.Permissions)
		assert.Equal(t, resp.Permissions, issuer.lastPermissions)

		stored, err := users.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		seedUser(t, users, "alice", "secret1")

		svc := NewAuthService(users, &stubTokenIssuer{token: "tok"}, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "nope"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("unknown username is unauthorized", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)

		svc := NewAuthService(users, &stubTokenIssuer{token: "tok"}, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret1"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		u := seedUser(t, users, "alice", "secret1")
		require.NoError(t, u.Deactivate())
		require.NoError(t, users.Save(ctx, u))

		svc := NewAuthService(users, &stubTokenIssuer{token: "tok"}, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account with no roles", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		svc := NewAuthService(users, &stubTokenIssuer{}, nil)

		resp, err := svc.Register(ctx, RegisterRequest{
			Username: "bob", Password: "secret1", DisplayName: "Bob", Email: "bob@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.Username)
		assert.Empty(t, resp.RoleIDs)

		_, err = users.FindByUsername(ctx, "bob")
		assert.NoError(t, err)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		roles := newMemRoleRepo()
		users := newMemUserRepo(roles)
		seedUser(t, users, "bob", "secret1")
		svc := NewAuthService(users, &stubTokenIssuer{}, nil)

		_, err := svc.Register(ctx, RegisterRequest{Username: "bob", Password: "secret1"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
	})
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	u := seedUser(t, users, "alice", "secret1")
	svc := NewAuthService(users, &stubTokenIssuer{token: "tok"}, nil)

	t.Run("wrong old password is rejected", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{
			OldPassword: "wrong", NewPassword: "newsecret",
		})
		assert.Error(t, err)
	})

	t.Run("new password takes effect", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{
			OldPassword: "secret1", NewPassword: "newsecret",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)

		_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "newsecret"})
		assert.NoError(t, err)
	})
}

func TestAuthServiceProfile(t *testing.T) {
	ctx := context.Background()
	roles := newMemRoleRepo()
	users := newMemUserRepo(roles)
	u := seedUser(t, users, "alice", "secret1")
	svc := NewAuthService(users, &stubTokenIssuer{}, nil)

	resp, err := svc.UpdateProfile(ctx, u.ID, "Alice W", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice W", resp.DisplayName)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
