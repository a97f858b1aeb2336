package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksHashed(t *testing.T) {
	assert.True(t, LooksHashed("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, LooksHashed("$2b$10$abcdefghijklmnopqrstuv"))
	assert.True(t, LooksHashed("$2y$10$abcdefghijklmnopqrstuv"))

	assert.False(t, LooksHashed("hunter2"))
	assert.False(t, LooksHashed(""))
	assert.False(t, LooksHashed("$1$legacy-md5-style"))
	assert.False(t, LooksHashed("2a$10$missing-dollar"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, LooksHashed(hashed))
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, VerifyPassword("correct horse battery staple", hashed))
	assert.False(t, VerifyPassword("correct horse battery stable", hashed))
	assert.False(t, VerifyPassword("", hashed))
}

func TestVerifyPasswordRejectsPlaintextStored(t *testing.T) {
	// A stored value that never went through hashing must not verify.
	assert.False(t, VerifyPassword("hunter2", "hunter2"))
}
