package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordAsBcrypt(t *testing.T) {
	Cost = bcrypt.MinCost

	first, err := HashPasswordAsBcrypt("admin")
	require.NoError(t, err)
	second, err := HashPasswordAsBcrypt("admin")
	require.NoError(t, err)

	assert.NotEqual(t, "admin", first)
	assert.NotEqual(t, first, second, "salt must differ between calls")
	assert.True(t, CheckPasswordHash(first, "admin"))
	assert.True(t, CheckPasswordHash(second, "admin"))
}

func TestCheckPasswordHashRejects(t *testing.T) {
	Cost = bcrypt.MinCost

	hash, err := HashPasswordAsBcrypt("correct horse")
	require.NoError(t, err)

	assert.False(t, CheckPasswordHash(hash, "correct hors"))
	assert.False(t, CheckPasswordHash(hash, ""))
	assert.False(t, CheckPasswordHash("not-a-hash", "correct horse"))
}
