package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanrmdhni/portfolio-backend/auth"
	"github.com/farhanrmdhni/portfolio-backend/database"
)

func testAuthService() *auth.Service {
	return auth.NewService(map[string]string{
		"ADMIN_EMAIL":    "admin@example.com",
		"ADMIN_PASSWORD": "hunter2",
		"SESSION_SECRET": "test-secret",
	})
}

func TestAuthenticateRejectsBeforeHandlerRuns(t *testing.T) {
	middleware := newAuthMiddleware(testAuthService())

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"not a bearer token", "Basic abc123"},
		{"empty bearer token", "Bearer "},
		{"invalid token", "Bearer not-a-real-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			r := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			middleware.authenticate(next).ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, handlerCalled, "handler must not run for unauthenticated requests")
		})
	}
}

func TestAuthenticateAttachesUser(t *testing.T) {
	authService := testAuthService()
	middleware := newAuthMiddleware(authService)

	token, _, err := authService.SignIn("admin@example.com", "hunter2")
	require.NoError(t, err)

	var seenEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		require.NotNil(t, user)
		seenEmail = user.Email
	})

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	middleware.authenticate(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", seenEmail)
}

func TestRequireStoreAnswers503WhenUnconfigured(t *testing.T) {
	responder := NewResponder(log.Logger)

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	// Zero Database means no connection was configured at startup.
	guard := requireStore(database.Database{}, responder)

	r := httptest.NewRequest(http.MethodGet, "/projects", nil)
	w := httptest.NewRecorder()
	guard(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, handlerCalled)
	assert.Contains(t, w.Body.String(), "SUPABASE_DB")
}
