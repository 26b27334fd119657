package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

func serve(t *testing.T, h http.Handler, svc jwt.Service, role user.Role, employeeID *string, path string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		token, _, err := svc.GenerateAccessToken("user-1", "user@salon.test", employeeID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit(t *testing.T) {
	limit, err := RateLimit("2-M")
	require.NoError(t, err)
	h := limit(noContent)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_InvalidFormat(t *testing.T) {
	_, err := RateLimit("lots")
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("secret", "15m", "24h")
	h := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc.JWTAuth())(noContent))

	assert.Equal(t, http.StatusUnauthorized, serve(t, h, svc, "", nil, "/"))
	assert.Equal(t, http.StatusNoContent, serve(t, h, svc, user.RoleUser, nil, "/"))

	// refresh tokens are not accepted as access tokens
	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyAndRequirePermission(t *testing.T) {
	svc := jwt.NewJWTService("secret", "15m", "24h")
	verify := jwtauth.Verifier(svc.JWTAuth())

	admin := verify(AdminOnly(noContent))
	assert.Equal(t, http.StatusForbidden, serve(t, admin, svc, user.RoleUser, nil, "/"))
	assert.Equal(t, http.StatusNoContent, serve(t, admin, svc, user.RoleAdmin, nil, "/"))
	assert.Equal(t, http.StatusNoContent, serve(t, admin, svc, user.RoleSuperAdmin, nil, "/"))

	trigger := verify(RequirePermission(user.PermissionJobTrigger)(noContent))
	assert.Equal(t, http.StatusForbidden, serve(t, trigger, svc, user.RoleAdmin, nil, "/"))
	assert.Equal(t, http.StatusNoContent, serve(t, trigger, svc, user.RoleSuperAdmin, nil, "/"))
}

func TestRequireEmployeeAccess(t *testing.T) {
	svc := jwt.NewJWTService("secret", "15m", "24h")
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.With(RequireEmployeeAccess("id")).Get("/employees/{id}", noContent)

	own := "emp-1"
	assert.Equal(t, http.StatusNoContent, serve(t, r, svc, user.RoleUser, &own, "/employees/emp-1"))
	assert.Equal(t, http.StatusForbidden, serve(t, r, svc, user.RoleUser, &own, "/employees/emp-2"))
	assert.Equal(t, http.StatusForbidden, serve(t, r, svc, user.RoleUser, nil, "/employees/emp-1"))
	assert.Equal(t, http.StatusNoContent, serve(t, r, svc, user.RoleAdmin, nil, "/employees/emp-2"))
	assert.Equal(t, http.StatusUnauthorized, serve(t, r, svc, "", nil, "/employees/emp-1"))
}
