package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MonoStore/internal/auth"
)

func issueToken(t *testing.T, tm *auth.TokenMaker, role string) string {
	t.Helper()
	tok, err := tm.New("u_1", "john@example.com", role, 15*time.Minute)
	require.NoError(t, err)
	return tok
}

func protected(t *testing.T, tm *auth.TokenMaker, admin bool) http.Handler {
	t.Helper()

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u_1", u.ID)
		w.WriteHeader(http.StatusOK)
	})

	if admin {
		h = auth.RequireAdmin(h)
	}
	return auth.RequireAuth(tm)(h)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	tm := auth.NewTokenMaker("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	protected(t, tm, false).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "No token provided")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tm := auth.NewTokenMaker("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	protected(t, tm, false).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid token")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tm := auth.NewTokenMaker("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, auth.RoleCustomer))
	rr := httptest.NewRecorder()
	protected(t, tm, false).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireAdmin_CustomerForbidden(t *testing.T) {
	tm := auth.NewTokenMaker("test-secret")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, auth.RoleCustomer))
	rr := httptest.NewRecorder()
	protected(t, tm, true).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Admin access required")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	tm := auth.NewTokenMaker("test-secret")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, auth.RoleAdmin))
	rr := httptest.NewRecorder()
	protected(t, tm, true).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
