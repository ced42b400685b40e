package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)

	again, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := CheckPassword(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	ok, err := CheckPassword("not-a-bcrypt-hash", "secret1")
	assert.False(t, ok)
	assert.Error(t, err)
}
