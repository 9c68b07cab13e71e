package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"deipna/internal/domain"
)

// RevokedTokenRepository maintains the access-token denylist.
type RevokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

func (r *RevokedTokenRepository) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	entry := domain.RevokedAccessToken{JTI: jti, ExpiresAt: expiresAt}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// IsRevoked is a primary-key point lookup, never a scan.
func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var entry domain.RevokedAccessToken
	err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteExpired drops entries whose blocked token has expired anyway.
func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&domain.RevokedAccessToken{})
	return res.RowsAffected, res.Error
}
