package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-that-is-long-enough", "15m", "168h")
}

func TestGenerateAccessToken_CarriesClaims(t *testing.T) {
	svc := newTestService()
	empID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "barber@salon.fr", &empID, user.RoleUser)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("secret", "not-a-duration", "1h")
	_, _, err := svc.GenerateAccessToken("user-1", "a@b.fr", nil, user.RoleAdmin)
	assert.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParseRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateAccessToken("user-1", "a@b.fr", nil, user.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(token)
	assert.Error(t, err)
}

func TestStreamToken_RoundTrip(t *testing.T) {
	svc := newTestService()
	empID := "emp-9"

	token, expiresIn, err := svc.GenerateStreamToken(StreamClaims{UserID: "user-9", Role: user.RoleUser, EmployeeID: &empID})
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	claims, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, user.RoleUser, claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, "emp-9", *claims.EmployeeID)
}

func TestStreamToken_AdminWithoutEmployee(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateStreamToken(StreamClaims{UserID: "admin-1", Role: user.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.EmployeeID)
}

func TestValidateStreamToken_RejectsOtherTypes(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateStreamToken("garbage")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()
	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc")
	assert.True(t, svc.IsTokenRevoked("abc"))
}
