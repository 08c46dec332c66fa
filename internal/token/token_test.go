package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestToken_IssueAndVerify(t *testing.T) {
	t.Run("Успешная проверка свежего токена", func(t *testing.T) {
		tokenString, err := Issue("user-123", "user", testSecret, time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		claims, err := Verify(tokenString, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("Роль администратора сохраняется в claims", func(t *testing.T) {
		tokenString, err := Issue("admin-1", "admin", testSecret, time.Hour)
		require.NoError(t, err)

		claims, err := Verify(tokenString, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})
}

func TestToken_Expired(t *testing.T) {
	// issue a token that is already expired
	tokenString, err := Issue("user-123", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := Verify(tokenString, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestToken_Invalid(t *testing.T) {
	t.Run("Неверный секрет", func(t *testing.T) {
		tokenString, err := Issue("user-123", "user", testSecret, time.Hour)
		require.NoError(t, err)

		claims, err := Verify(tokenString, "other-secret")
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Испорченная подпись", func(t *testing.T) {
		tokenString, err := Issue("user-123", "user", testSecret, time.Hour)
		require.NoError(t, err)

		claims, err := Verify(tokenString+"x", testSecret)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Мусор вместо токена", func(t *testing.T) {
		claims, err := Verify("not-a-token", testSecret)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
