package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wims/backend/internal/infrastructure/config"
)

func testService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests-only",
		Expiration: expiration,
		Issuer:     "wms-test",
	})
}

func TestIssueAndValidate(t *testing.T) {
	svc := testService(time.Hour)

	token, expiresAt, err := svc.Issue(42, "alice", []string{"stocks:read", "stocks:write"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "wms-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.HasPermission("stocks:read"))
	assert.False(t, claims.HasPermission("users:write"))
	assert.True(t, claims.HasAnyPermission("users:write", "stocks:write"))
}

func TestValidateRejectsBadTokens(t *testing.T) {
	svc := testService(time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret: "a-different-secret-entirely-here", Expiration: time.Hour, Issuer: "wms-test",
		})
		token, _, err := other.Issue(1, "bob", nil)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		short := testService(-time.Minute)
		token, _, err := short.Issue(1, "bob", nil)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestUniqueTokenIDs(t *testing.T) {
	svc := testService(time.Hour)

	t1, _, err := svc.Issue(1, "alice", nil)
	require.NoError(t, err)
	t2, _, err := svc.Issue(1, "alice", nil)
	require.NoError(t, err)

	c1, err := svc.Validate(t1)
	require.NoError(t, err)
	c2, err := svc.Validate(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}
