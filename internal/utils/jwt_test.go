package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testSecret          = "test-secret-key-for-jwt-testing"
	testWrongSecret     = "wrong-secret-key-for-jwt-testing"
	testTokenDuration   = 10 * time.Minute
	testExpiredDuration = -1 * time.Hour
)

// Helper function to create test user
func createTestUser(role models.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "testuser",
		Email:    "test@example.com",
		Role:     role,
	}
}

func TestGenerateToken_Success(t *testing.T) {
	user := createTestUser(models.RoleUser)

	token, err := GenerateToken(user, testSecret, testTokenDuration)

	require.NoError(t, err, "GenerateToken should not return error for valid input")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestGenerateToken_DifferentRoles(t *testing.T) {
	roles := []models.Role{models.RoleUser, models.RoleAdmin}

	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			user := createTestUser(role)

			token, err := GenerateToken(user, testSecret, testTokenDuration)

			require.NoError(t, err, "GenerateToken should work for all roles")
			assert.NotEmpty(t, token)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, role, claims.Role, "Token should contain correct role")
		})
	}
}

func TestValidateToken_Success(t *testing.T) {
	user := createTestUser(models.RoleUser)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	claims, err := ValidateToken(token, testSecret)

	require.NoError(t, err, "ValidateToken should not return error for valid token")
	assert.NotNil(t, claims, "Claims should not be nil")
	assert.Equal(t, user.ID, claims.UserID, "UserID should match")
	assert.Equal(t, user.Username, claims.Username, "Username should match")
	assert.Equal(t, user.Role, claims.Role, "Role should match")
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()), "Token should not be expired")
}

func TestValidateToken_AcceptedShortlyAfterIssue(t *testing.T) {
	user := createTestUser(models.RoleUser)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	time.Sleep(1 * time.Second)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err, "Token issued at T must be accepted at T+1s")
	assert.Equal(t, user.ID, claims.UserID)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	user := createTestUser(models.RoleUser)
	token, err := GenerateToken(user, testSecret, testExpiredDuration)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	claims, err := ValidateToken(token, testSecret)

	assert.ErrorIs(t, err, ErrExpiredToken, "ValidateToken should report expiry")
	assert.Nil(t, claims, "Claims should be nil for expired token")
}

func TestValidateToken_PastLifetime(t *testing.T) {
	// A token whose lifetime elapsed one second ago is unconditionally rejected.
	user := createTestUser(models.RoleUser)
	token, err := GenerateToken(user, testSecret, -1*time.Second)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err, "Token past its lifetime must be rejected")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := createTestUser(models.RoleUser)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err, "Setup: GenerateToken should not fail")

	claims, err := ValidateToken(token, testWrongSecret)

	assert.ErrorIs(t, err, ErrInvalidToken, "Signature mismatch must be rejected")
	assert.Nil(t, claims)
}

func TestValidateToken_MalformedTokens(t *testing.T) {
	malformedTokens := []string{
		"",
		"invalid.token.here",
		"not-a-jwt-token",
		"a.b",
	}

	for _, token := range malformedTokens {
		claims, err := ValidateToken(token, testSecret)

		assert.Error(t, err, "Malformed token should be rejected: %q", token)
		assert.Nil(t, claims)
	}
}
