package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

// GuestInfo identifies who the table is held for. Filled from the account
// for logged-in bookings, supplied explicitly for guest checkout.
type GuestInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Reservation struct {
	ID           string            `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID string            `json:"restaurantId" gorm:"type:uuid;index;not null"`
	Restaurant   Restaurant        `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	UserID       *string           `json:"userId" gorm:"type:uuid;index"`
	Date         string            `json:"date" gorm:"size:10;not null"`
	Time         string            `json:"time" gorm:"size:5;not null"`
	PartySize    int               `json:"partySize" gorm:"not null"`
	Status       ReservationStatus `json:"status" gorm:"size:20;not null"`
	GuestInfo    GuestInfo         `json:"guestInfo" gorm:"serializer:json"`
	Notes        *string           `json:"notes"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (r *Reservation) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
