package restaurant

import "deipna/internal/domain"

type AddressInput struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type OpeningHoursInput struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	OpenTime  string `json:"openTime" validate:"required,len=5"`
	CloseTime string `json:"closeTime" validate:"required,len=5"`
	IsClosed  bool   `json:"isClosed"`
}

type CreateRestaurantRequest struct {
	Name         string              `json:"name" validate:"required,max=255"`
	Description  *string             `json:"description"`
	Phone        *string             `json:"phone"`
	Email        *string             `json:"email" validate:"omitempty,email"`
	Address      *AddressInput       `json:"address"`
	CuisineTypes []string            `json:"cuisineTypes" validate:"dive,oneof=FRENCH ITALIAN JAPANESE CHINESE INDIAN MEXICAN THAI MEDITERRANEAN AMERICAN OTHER"`
	PriceRange   *string             `json:"priceRange" validate:"omitempty,oneof=BUDGET MODERATE UPSCALE FINE_DINING"`
	Features     []string            `json:"features" validate:"dive,oneof=VEGAN_FRIENDLY VEGETARIAN_FRIENDLY HALAL KOSHER GLUTEN_FREE WHEELCHAIR_ACCESSIBLE PARKING TERRACE WIFI PET_FRIENDLY"`
	OpeningHours []OpeningHoursInput `json:"openingHours" validate:"dive"`
}

type UpdateRestaurantRequest struct {
	Name         *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string              `json:"description"`
	Phone        *string              `json:"phone"`
	Email        *string              `json:"email" validate:"omitempty,email"`
	Address      *AddressInput        `json:"address"`
	CuisineTypes *[]string            `json:"cuisineTypes" validate:"omitempty,dive,oneof=FRENCH ITALIAN JAPANESE CHINESE INDIAN MEXICAN THAI MEDITERRANEAN AMERICAN OTHER"`
	PriceRange   *string              `json:"priceRange" validate:"omitempty,oneof=BUDGET MODERATE UPSCALE FINE_DINING"`
	Features     *[]string            `json:"features" validate:"omitempty,dive,oneof=VEGAN_FRIENDLY VEGETARIAN_FRIENDLY HALAL KOSHER GLUTEN_FREE WHEELCHAIR_ACCESSIBLE PARKING TERRACE WIFI PET_FRIENDLY"`
	OpeningHours *[]OpeningHoursInput `json:"openingHours" validate:"omitempty,dive"`
}

// SearchResponse mirrors the paged listing shape the SPA consumes.
type SearchResponse struct {
	Content       []domain.Restaurant `json:"content"`
	TotalElements int64               `json:"totalElements"`
	TotalPages    int                 `json:"totalPages"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
}

func (a *AddressInput) toDomain() domain.Address {
	if a == nil {
		return domain.Address{}
	}
	return domain.Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func hoursToDomain(in []OpeningHoursInput) []domain.OpeningHours {
	out := make([]domain.OpeningHours, 0, len(in))
	for _, h := range in {
		out = append(out, domain.OpeningHours{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			IsClosed:  h.IsClosed,
		})
	}
	return out
}

func cuisinesToDomain(in []string) []domain.CuisineType {
	out := make([]domain.CuisineType, 0, len(in))
	for _, c := range in {
		out = append(out, domain.CuisineType(c))
	}
	return out
}

func featuresToDomain(in []string) []domain.RestaurantFeature {
	out := make([]domain.RestaurantFeature, 0, len(in))
	for _, f := range in {
		out = append(out, domain.RestaurantFeature(f))
	}
	return out
}
