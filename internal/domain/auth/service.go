package auth

import (
	"context"

	"github.com/cmlabs-hris/salon-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	StreamToken(ctx context.Context, userID string) (StreamTokenResponse, error)
}
