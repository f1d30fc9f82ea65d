package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateSessionToken(42, "a@b.com", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionTokenFailsClosed(t *testing.T) {
	svc := NewJWTService("test-secret")

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTServiceWithTTL("test-secret", -time.Minute, time.Hour)
		token, err := expired.GenerateSessionToken(1, "a@b.com", "user")
		assert.NoError(t, err)

		claims, err := svc.ValidateSessionToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.GenerateSessionToken(1, "a@b.com", "user")
		assert.NoError(t, err)

		claims, err := svc.ValidateSessionToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("garbage", func(t *testing.T) {
		claims, err := svc.ValidateSessionToken("not.a.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("reset token is not a session", func(t *testing.T) {
		token, err := svc.GenerateResetToken("a@b.com")
		assert.NoError(t, err)

		claims, err := svc.ValidateSessionToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestResetTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateResetToken("reset@example.com")
	assert.NoError(t, err)

	email, err := svc.VerifyResetToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "reset@example.com", email)
}

func TestResetTokenFailsClosed(t *testing.T) {
	svc := NewJWTService("test-secret")

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTServiceWithTTL("test-secret", time.Hour, -time.Minute)
		token, err := expired.GenerateResetToken("a@b.com")
		assert.NoError(t, err)

		email, err := svc.VerifyResetToken(token)
		assert.Error(t, err)
		assert.Empty(t, email)
	})

	t.Run("session token is not a reset proof", func(t *testing.T) {
		token, err := svc.GenerateSessionToken(1, "a@b.com", "user")
		assert.NoError(t, err)

		email, err := svc.VerifyResetToken(token)
		assert.Error(t, err)
		assert.Empty(t, email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.GenerateResetToken("a@b.com")
		assert.NoError(t, err)

		email, err := svc.VerifyResetToken(token)
		assert.Error(t, err)
		assert.Empty(t, email)
	})
}
