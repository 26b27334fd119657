package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/salon-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testPassword   = "Sup3r$ecretPassw0rd"
)

type authFixture struct {
	store   *memory.Store
	jwt     jwt.Service
	service auth.AuthService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := memory.NewStore()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return authFixture{
		store:   store,
		jwt:     jwtService,
		service: NewAuthService(memory.Transactor{}, store.Users(), store.Employees(), jwtService, store.RefreshTokens()),
	}
}

func (f authFixture) createBarber(t *testing.T, email string) (user.User, employee.Employee) {
	t.Helper()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := f.store.Users().Create(ctx, user.User{
		Username:     "Karim",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
	})
	require.NoError(t, err)

	emp, err := f.store.Employees().Create(ctx, employee.Employee{
		UserID:              &u.ID,
		FirstName:           "Karim",
		LastName:            "Benali",
		Position:            "Barber",
		HireDate:            time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		DeductionPercentage: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	return u, emp
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	_, emp := f.createBarber(t, "karim@salon.test")

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "karim@salon.test", Password: testPassword})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)

	token, err := f.jwt.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	empID, _ := token.Get("employee_id")
	assert.Equal(t, emp.ID, empID)
	role, _ := token.Get("role")
	assert.Equal(t, "user", role)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.createBarber(t, "karim@salon.test")
	ctx := context.Background()

	_, err := f.service.Login(ctx, auth.LoginRequest{Email: "karim@salon.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, auth.LoginRequest{Email: "nobody@salon.test", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	f := newAuthFixture(t)
	f.createBarber(t, "karim@salon.test")
	ctx := context.Background()

	tokens, err := f.service.Login(ctx, auth.LoginRequest{Email: "karim@salon.test", Password: testPassword})
	require.NoError(t, err)

	refreshed, err := f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, f.service.Logout(ctx, tokens.RefreshToken))
	// a second logout is a no-op
	require.NoError(t, f.service.Logout(ctx, tokens.RefreshToken))

	_, err = f.service.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	f.createBarber(t, "karim@salon.test")

	tokens, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "karim@salon.test", Password: testPassword})
	require.NoError(t, err)

	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshUnknownTokenIsRevoked(t *testing.T) {
	f := newAuthFixture(t)
	u, _ := f.createBarber(t, "karim@salon.test")

	// signed correctly but never stored
	token, _, err := f.jwt.GenerateRefreshToken(u.ID)
	require.NoError(t, err)

	_, err = f.service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: token})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture(t)
	u, emp := f.createBarber(t, "karim@salon.test")

	me, err := f.service.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "karim@salon.test", me.Email)
	require.NotNil(t, me.Employee)
	assert.Equal(t, emp.ID, me.Employee.ID)
	assert.Equal(t, "2024-03-01", me.Employee.HireDate)

	_, err = f.service.Me(context.Background(), "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestAuthService_StreamToken(t *testing.T) {
	f := newAuthFixture(t)
	u, emp := f.createBarber(t, "karim@salon.test")

	resp, err := f.service.StreamToken(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, resp.ExpiresIn)

	claims, err := f.jwt.ValidateStreamToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, user.RoleUser, claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, emp.ID, *claims.EmployeeID)
}
