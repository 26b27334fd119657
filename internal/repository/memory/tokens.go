package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/repository/postgresql"
)

type tokenRepo struct{ s *Store }

func (s *Store) RefreshTokens() postgresql.JWTRepository { return tokenRepo{s} }

func (r tokenRepo) CreateRefreshToken(_ context.Context, userID string, token string, expiresAt int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tokens[token] = tokenRow{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r tokenRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.tokens[token]
	if !ok {
		return true, nil
	}
	return row.revoked || row.expiresAt.Before(r.s.now()), nil
}

func (r tokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if row, ok := r.s.tokens[token]; ok {
		row.revoked = true
		r.s.tokens[token] = row
	}
	return nil
}

func (r tokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for token, row := range r.s.tokens {
		if row.expiresAt.Before(r.s.now()) {
			delete(r.s.tokens, token)
			n++
		}
	}
	return n, nil
}
