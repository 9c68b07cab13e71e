package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuisineType string

const (
	CuisineFrench        CuisineType = "FRENCH"
	CuisineItalian       CuisineType = "ITALIAN"
	CuisineJapanese      CuisineType = "JAPANESE"
	CuisineChinese       CuisineType = "CHINESE"
	CuisineIndian        CuisineType = "INDIAN"
	CuisineMexican       CuisineType = "MEXICAN"
	CuisineThai          CuisineType = "THAI"
	CuisineMediterranean CuisineType = "MEDITERRANEAN"
	CuisineAmerican      CuisineType = "AMERICAN"
	CuisineOther         CuisineType = "OTHER"
)

type PriceRange string

const (
	PriceBudget     PriceRange = "BUDGET"
	PriceModerate   PriceRange = "MODERATE"
	PriceUpscale    PriceRange = "UPSCALE"
	PriceFineDining PriceRange = "FINE_DINING"
)

type RestaurantFeature string

const (
	FeatureVeganFriendly        RestaurantFeature = "VEGAN_FRIENDLY"
	FeatureVegetarianFriendly   RestaurantFeature = "VEGETARIAN_FRIENDLY"
	FeatureHalal                RestaurantFeature = "HALAL"
	FeatureKosher               RestaurantFeature = "KOSHER"
	FeatureGlutenFree           RestaurantFeature = "GLUTEN_FREE"
	FeatureWheelchairAccessible RestaurantFeature = "WHEELCHAIR_ACCESSIBLE"
	FeatureParking              RestaurantFeature = "PARKING"
	FeatureTerrace              RestaurantFeature = "TERRACE"
	FeatureWifi                 RestaurantFeature = "WIFI"
	FeaturePetFriendly          RestaurantFeature = "PET_FRIENDLY"
)

// Address is stored as flat columns (address_street, address_city, ...) so
// the city filter stays a plain indexed-comparable column on both drivers.
type Address struct {
	Street     string `json:"street" gorm:"size:255"`
	City       string `json:"city" gorm:"size:100"`
	PostalCode string `json:"postalCode" gorm:"size:20"`
	Country    string `json:"country" gorm:"size:100"`
}

type Restaurant struct {
	ID           string              `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string              `json:"name" gorm:"size:255;not null"`
	Description  *string             `json:"description"`
	Phone        *string             `json:"phone" gorm:"size:20"`
	Email        *string             `json:"email" gorm:"size:255"`
	Address      Address             `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	CuisineTypes []CuisineType       `json:"cuisineTypes" gorm:"serializer:json"`
	PriceRange   *PriceRange         `json:"priceRange" gorm:"size:50"`
	Features     []RestaurantFeature `json:"features" gorm:"serializer:json"`
	OwnerID      string              `json:"ownerId" gorm:"type:uuid;index;not null"`
	Owner        User                `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	OpeningHours []OpeningHours      `json:"openingHours" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func (r *Restaurant) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// OpeningHours holds one weekday's open/close window. DayOfWeek follows
// time.Weekday numbering (0 = Sunday). Times are "HH:MM" strings.
type OpeningHours struct {
	ID           string `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID string `json:"restaurantId" gorm:"type:uuid;index;not null"`
	DayOfWeek    int    `json:"dayOfWeek" gorm:"not null"`
	OpenTime     string `json:"openTime" gorm:"size:5;not null"`
	CloseTime    string `json:"closeTime" gorm:"size:5;not null"`
	IsClosed     bool   `json:"isClosed" gorm:"not null;default:false"`
}

func (OpeningHours) TableName() string { return "restaurant_opening_hours" }

func (h *OpeningHours) BeforeCreate(*gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
