package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Abcd123!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Abcd123!", hash)

	// Same input hashes to a different string every time (random salt).
	other, err := HashPassword("Abcd123!")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcd123!")
	assert.NoError(t, err)

	assert.True(t, CheckPassword("Abcd123!", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("Abcd123!", "not-a-bcrypt-hash"))
}
