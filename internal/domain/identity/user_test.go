package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u, err := NewUser("alice", "secret123", "Alice", "alice@example.com")
		require.NoError(t, err)

		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, UserStatusActive, u.Status)
		assert.True(t, u.VerifyPassword("secret123"))
		assert.False(t, u.VerifyPassword("wrong"))
		assert.NotEqual(t, "secret123", u.PasswordHash)
	})

	t.Run("username normalized to lowercase", func(t *testing.T) {
		u, err := NewUser("  Alice_01 ", "secret123", "", "")
		require.NoError(t, err)
		assert.Equal(t, "alice_01", u.Username)
	})

	t.Run("invalid username rejected", func(t *testing.T) {
		for _, name := range []string{"ab", "has space", "bad-char!", ""} {
			_, err := NewUser(name, "secret123", "", "")
			require.Error(t, err, name)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, shared.CodeValidation, de.Code)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := NewUser("alice", "abc", "", "")
		require.Error(t, err)
	})
}

func TestUser_PasswordManagement(t *testing.T) {
	t.Run("change password verifies old one", func(t *testing.T) {
		u, err := NewUser("alice", "secret123", "", "")
		require.NoError(t, err)

		require.Error(t, u.ChangePassword("wrong", "newsecret1"))
		require.NoError(t, u.ChangePassword("secret123", "newsecret1"))
		assert.True(t, u.VerifyPassword("newsecret1"))
		assert.False(t, u.VerifyPassword("secret123"))
	})

	t.Run("admin reset skips old password", func(t *testing.T) {
		u, err := NewUser("alice", "secret123", "", "")
		require.NoError(t, err)

		require.NoError(t, u.SetPassword("resetpass1"))
		assert.True(t, u.VerifyPassword("resetpass1"))
	})
}

func TestUser_Roles(t *testing.T) {
	u, err := NewUser("alice", "secret123", "", "")
	require.NoError(t, err)

	require.NoError(t, u.AssignRole(1))
	require.NoError(t, u.AssignRole(2))
	require.Error(t, u.AssignRole(1))
	assert.Equal(t, []int64{1, 2}, u.RoleIDs)

	require.NoError(t, u.RemoveRole(1))
	require.Error(t, u.RemoveRole(1))
	assert.Equal(t, []int64{2}, u.RoleIDs)

	u.SetRoles([]int64{3, 4, 5})
	assert.Equal(t, []int64{3, 4, 5}, u.RoleIDs)
}

func TestUser_Status(t *testing.T) {
	u, err := NewUser("alice", "secret123", "", "")
	require.NoError(t, err)

	require.NoError(t, u.Deactivate())
	assert.False(t, u.IsActive())
	require.Error(t, u.Deactivate())

	require.NoError(t, u.Activate())
	assert.True(t, u.IsActive())
}

func TestPermission(t *testing.T) {
	t.Run("parse code", func(t *testing.T) {
		p, err := NewPermissionFromCode("Stock_Count:Create")
		require.NoError(t, err)
		assert.Equal(t, "stock_count:create", p.Code)
		assert.Equal(t, "stock_count", p.Module)
		assert.Equal(t, "create", p.Action)
	})

	t.Run("malformed codes rejected", func(t *testing.T) {
		for _, code := range []string{"", "nocolon", ":action", "module:"} {
			_, err := NewPermissionFromCode(code)
			require.Error(t, err, code)
		}
	})
}

func TestRole(t *testing.T) {
	t.Run("grant and revoke", func(t *testing.T) {
		r, err := NewRole("stock keeper", "")
		require.NoError(t, err)

		require.NoError(t, r.Grant("stock:view"))
		require.NoError(t, r.Grant("stock:view"))
		require.NoError(t, r.Grant("stock_count:create"))
		assert.Len(t, r.Permissions, 2)
		assert.True(t, r.HasPermission("stock:view"))

		require.NoError(t, r.Revoke("stock:view"))
		assert.False(t, r.HasPermission("stock:view"))
		require.Error(t, r.Revoke("stock:view"))
	})

	t.Run("set permissions deduplicates", func(t *testing.T) {
		r, err := NewRole("admin", "")
		require.NoError(t, err)

		require.NoError(t, r.SetPermissions([]string{"stock:view", "stock:view", "user:manage"}))
		assert.ElementsMatch(t, []string{"stock:view", "user:manage"}, r.PermissionCodes())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewRole("  ", "")
		require.Error(t, err)
	})
}
