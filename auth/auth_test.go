package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanrmdhni/portfolio-backend/errs"
)

func testConfig(extra map[string]string) map[string]string {
	c := map[string]string{
		"ADMIN_EMAIL":    "admin@example.com",
		"ADMIN_PASSWORD": "hunter2",
		"SESSION_SECRET": "test-secret",
	}
	for k, v := range extra {
		c[k] = v
	}
	return c
}

func TestSignInAndCurrentUser(t *testing.T) {
	service := NewService(testConfig(nil))

	token, user, err := service.SignIn("admin@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "admin@example.com", user.Email)

	current, err := service.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", current.Email)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	service := NewService(testConfig(nil))

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "wrong"},
		{"wrong email", "other@example.com", "hunter2"},
		{"empty password", "admin@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.SignIn(tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, errs.IsInvalidCredentialsError(err))
		})
	}
}

func TestSignInPrefersBcryptHash(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	service := NewService(testConfig(map[string]string{
		"ADMIN_PASSWORD_HASH": hash,
		"ADMIN_PASSWORD":      "ignored-when-hash-set",
	}))

	_, _, err = service.SignIn("admin@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = service.SignIn("admin@example.com", "ignored-when-hash-set")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidCredentialsError(err))
}

func TestSignInDisabledWithoutAdminEmail(t *testing.T) {
	service := NewService(map[string]string{"SESSION_SECRET": "s"})

	_, _, err := service.SignIn("admin@example.com", "anything")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidCredentialsError(err))
}

func TestCurrentUserRejectsTamperedToken(t *testing.T) {
	service := NewService(testConfig(nil))
	other := NewService(testConfig(map[string]string{"SESSION_SECRET": "different-secret"}))

	token, _, err := service.SignIn("admin@example.com", "hunter2")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		svc   *Service
	}{
		{"garbage token", "not-a-jwt", service},
		{"empty token", "", service},
		{"wrong signing key", token, other},
		{"truncated token", token[:len(token)-5], service},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.CurrentUser(tt.token)
			require.Error(t, err)
		})
	}
}
