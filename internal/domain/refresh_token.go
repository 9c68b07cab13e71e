package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is a persisted, single-use refresh credential. The signed
// token string itself is the lookup key; a row is usable only while
// Revoked is false and ExpiresAt is in the future. Every successful
// refresh revokes the row it consumed and inserts a replacement.
type RefreshToken struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Token     string    `json:"-" gorm:"size:500;uniqueIndex;not null"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
