package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"deipna/internal/domain"
)

// ErrTokenConsumed signals that the row a rotation tried to revoke was
// already revoked by a concurrent request using the same token.
var ErrTokenConsumed = errors.New("refresh token already consumed")

// RefreshTokenRepository provides DB access for persisted refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetActiveByToken looks up a non-revoked row by the exact token string.
func (r *RefreshTokenRepository) GetActiveByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND revoked = ?", token, false).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkRevoked flips one row to revoked. Flipping an already-revoked row is
// a no-op, which keeps expired-token rejection idempotent.
func (r *RefreshTokenRepository) MarkRevoked(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

// Rotate revokes the consumed row and inserts its replacement in one
// transaction. The conditional update is the single-use guard: a racing
// request that already consumed the row leaves zero rows to update here.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, consumedID string, replacement *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.RefreshToken{}).
			Where("id = ? AND revoked = ?", consumedID, false).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenConsumed
		}
		return tx.Create(replacement).Error
	})
}

// DeleteByUser removes every refresh row for the account, revoked or not.
// Used by logout: all outstanding refresh chains die at once.
func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.RefreshToken{}).Error
}

// DeleteStale removes rows no refresh call could ever accept again:
// past expiry, or already revoked. Called by the cleanup command only.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked = ?", now, true).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
