package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer        UserRole = "CUSTOMER"
	RoleRestaurantOwner UserRole = "RESTAURANT_OWNER"
	RoleAdmin           UserRole = "ADMIN"
)

func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleCustomer, RoleRestaurantOwner, RoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

// User is an account row. Email is stored normalized (trimmed, lowercase);
// Password holds the scrypt hash and never leaves the API.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	FirstName string    `json:"firstName" gorm:"size:100;not null"`
	LastName  string    `json:"lastName" gorm:"size:100;not null"`
	Phone     *string   `json:"phone" gorm:"size:20"`
	Role      UserRole  `json:"role" gorm:"size:50;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
