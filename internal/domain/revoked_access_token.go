package domain

import "time"

// RevokedAccessToken is a denylist entry keyed by jti. Presence before the
// token's natural expiry makes the access token invalid even though its
// signature still verifies. ExpiresAt matches the access-token lifetime so
// the reaper can drop entries once the token they block is dead anyway.
type RevokedAccessToken struct {
	JTI       string    `json:"jti" gorm:"size:255;primaryKey"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}
