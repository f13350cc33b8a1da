package services_test

import (
	"testing"

	"gavel/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("top-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return services.NewAuthService("test-jwt-secret", "bot-frontend", string(hash), []string{"admin-1", "admin-2"})
}

func TestAuthService_IssueToken(t *testing.T) {
	service := newTestAuthService(t)

	token, err := service.IssueToken("bot-frontend", "top-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = service.IssueToken("bot-frontend", "wrong-secret")
	assert.Error(t, err)

	_, err = service.IssueToken("someone-else", "top-secret")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken(t *testing.T) {
	service := newTestAuthService(t)

	token, err := service.IssueToken("bot-frontend", "top-secret")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bot-frontend", claims["client_id"])

	_, err = service.ValidateToken(token + "tampered")
	assert.Error(t, err)

	// A token signed with another secret must be rejected
	hash, err := bcrypt.GenerateFromPassword([]byte("top-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	other := services.NewAuthService("different-secret", "bot-frontend", string(hash), nil)
	foreign, err := other.IssueToken("bot-frontend", "top-secret")
	require.NoError(t, err)
	_, err = service.ValidateToken(foreign)
	assert.Error(t, err)
}

func TestAuthService_IsAdmin(t *testing.T) {
	service := newTestAuthService(t)

	assert.True(t, service.IsAdmin("admin-1"))
	assert.True(t, service.IsAdmin("admin-2"))
	assert.False(t, service.IsAdmin("alice"))
	assert.False(t, service.IsAdmin(""))
}

func TestParseAdminList(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "single", raw: "123", expected: []string{"123"}},
		{name: "multiple", raw: "123,456", expected: []string{"123", "456"}},
		{name: "spaces", raw: " 123 , 456 ", expected: []string{"123", "456"}},
		{name: "blank entries skipped", raw: "123,,456,", expected: []string{"123", "456"}},
		{name: "only separators", raw: ", ,", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, services.ParseAdminList(tc.raw))
		})
	}
}
