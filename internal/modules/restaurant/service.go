package restaurant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"deipna/internal/domain"
	"deipna/internal/repository"
)

const slotStepMinutes = 30

type Service struct {
	restaurants  *repository.RestaurantRepository
	reservations *repository.ReservationRepository
}

func NewService(
	restaurants *repository.RestaurantRepository,
	reservations *repository.ReservationRepository,
) *Service {
	return &Service{restaurants: restaurants, reservations: reservations}
}

func (s *Service) Search(ctx context.Context, params repository.SearchParams) (*SearchResponse, error) {
	if params.Size < 1 {
		params.Size = 20
	}
	if params.Size > 100 {
		params.Size = 100
	}
	if params.Page < 0 {
		params.Page = 0
	}

	restaurants, total, err := s.restaurants.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.Size) - 1) / int64(params.Size))
	return &SearchResponse{
		Content:       restaurants,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          params.Page,
		Size:          params.Size,
	}, nil
}

// Mine returns the caller's restaurant, or nil without error when the
// caller owns none.
func (s *Service) Mine(ctx context.Context, ownerID string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

// Create enforces one restaurant per owner.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRestaurantRequest) (*domain.Restaurant, error) {
	if _, err := s.restaurants.GetByOwnerID(ctx, ownerID); err == nil {
		return nil, ErrAlreadyHasRestaurant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		Name:         req.Name,
		Description:  req.Description,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address.toDomain(),
		CuisineTypes: cuisinesToDomain(req.CuisineTypes),
		PriceRange:   (*domain.PriceRange)(req.PriceRange),
		Features:     featuresToDomain(req.Features),
		OwnerID:      ownerID,
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	if len(req.OpeningHours) > 0 {
		if err := s.restaurants.ReplaceOpeningHours(ctx, restaurant.ID, hoursToDomain(req.OpeningHours)); err != nil {
			return nil, err
		}
	}

	return s.restaurants.GetByID(ctx, restaurant.ID)
}

func (s *Service) Update(ctx context.Context, callerID, id string, req UpdateRestaurantRequest) (*domain.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != callerID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Description != nil {
		restaurant.Description = req.Description
	}
	if req.Phone != nil {
		restaurant.Phone = req.Phone
	}
	if req.Email != nil {
		restaurant.Email = req.Email
	}
	if req.Address != nil {
		restaurant.Address = req.Address.toDomain()
	}
	if req.CuisineTypes != nil {
		restaurant.CuisineTypes = cuisinesToDomain(*req.CuisineTypes)
	}
	if req.PriceRange != nil {
		restaurant.PriceRange = (*domain.PriceRange)(req.PriceRange)
	}
	if req.Features != nil {
		restaurant.Features = featuresToDomain(*req.Features)
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	if req.OpeningHours != nil {
		if err := s.restaurants.ReplaceOpeningHours(ctx, restaurant.ID, hoursToDomain(*req.OpeningHours)); err != nil {
			return nil, err
		}
	}

	return s.restaurants.GetByID(ctx, restaurant.ID)
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != callerID {
		return ErrForbidden
	}
	return s.restaurants.Delete(ctx, id)
}

// AvailableSlots lists the half-hour start times inside the open/close
// window for the requested date's weekday. A closed day, or a day with no
// configured hours, yields an empty list rather than an error.
func (s *Service) AvailableSlots(ctx context.Context, id, dateStr string) ([]string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	hours, err := s.restaurants.GetOpeningHoursForDay(ctx, id, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if hours.IsClosed {
		return []string{}, nil
	}

	openMin, err1 := parseClock(hours.OpenTime)
	closeMin, err2 := parseClock(hours.CloseTime)
	if err1 != nil || err2 != nil {
		return []string{}, nil
	}

	slots := []string{}
	for m := openMin; m < closeMin; m += slotStepMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots, nil
}

// Reservations lists a restaurant's reservations for its owner.
func (s *Service) Reservations(ctx context.Context, callerID, id string, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return s.reservations.ListByRestaurant(ctx, id, filter)
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
