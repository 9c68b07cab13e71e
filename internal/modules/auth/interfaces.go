package auth

import (
	"context"
	"time"

	"deipna/internal/domain"
	"deipna/internal/pkg/token"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface — persisted refresh-token rows.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetActiveByToken(ctx context.Context, tokenValue string) (*domain.RefreshToken, error)
	MarkRevoked(ctx context.Context, id string) error
	Rotate(ctx context.Context, consumedID string, replacement *domain.RefreshToken) error
	DeleteByUser(ctx context.Context, userID string) error
}

// RevokedTokenRepositoryInterface — the access-token denylist.
type RevokedTokenRepositoryInterface interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenService — the stateless token authority.
type TokenService interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyAccessToken(tokenStr string) (*token.AccessClaims, error)
	VerifyRefreshToken(tokenStr string) (string, error)
}
