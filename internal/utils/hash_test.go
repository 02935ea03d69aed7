package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testPassword      = "SecurePassword123!"
	testWrongPassword = "WrongPassword456!"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword(testPassword)

	require.NoError(t, err, "HashPassword should not return error for valid password")
	assert.NotEmpty(t, hash, "Hash should not be empty")
	assert.NotEqual(t, testPassword, hash, "Hash should be different from password")
	assert.Contains(t, hash, "$argon2id$", "Hash should contain Argon2id identifier")
}

func TestVerifyPassword_Correct(t *testing.T) {
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	match, err := VerifyPassword(testPassword, hash)

	require.NoError(t, err, "VerifyPassword should not return error")
	assert.True(t, match, "Password should match its hash")
}

func TestVerifyPassword_Incorrect(t *testing.T) {
	hash, err := HashPassword(testPassword)
	require.NoError(t, err, "Setup: HashPassword should not fail")

	match, err := VerifyPassword(testWrongPassword, hash)

	require.NoError(t, err, "VerifyPassword should not return error")
	assert.False(t, match, "Wrong password should not match hash")
}

func TestHashPassword_UniqueHashes(t *testing.T) {
	hash1, err1 := HashPassword(testPassword)
	hash2, err2 := HashPassword(testPassword)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, hash1, hash2, "Same password should produce different hashes due to unique salt")
}

func TestHashPassword_VeryLongPassword(t *testing.T) {
	password := strings.Repeat("a", 1000)

	hash, err := HashPassword(password)
	require.NoError(t, err, "HashPassword should handle very long passwords")

	match, err := VerifyPassword(password, hash)
	require.NoError(t, err)
	assert.True(t, match, "Very long password should match its hash")
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	invalidHashes := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$bad",
	}

	for _, hash := range invalidHashes {
		_, err := VerifyPassword(testPassword, hash)
		assert.Error(t, err, "Invalid hash format should be rejected: %q", hash)
	}
}
