package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"deipna/internal/domain"
	"deipna/internal/repository"
)

// NotificationSender pushes reservation events to the restaurant owner's
// live feed. Best effort; implemented by the notify hub.
type NotificationSender interface {
	NotifyReservationCreated(ownerID string, res *domain.Reservation)
	NotifyReservationStatusChanged(ownerID string, res *domain.Reservation)
}

// Statuses a restaurant owner may set. PENDING is reserved for creation.
var ownerAllowedStatuses = map[domain.ReservationStatus]bool{
	domain.ReservationConfirmed: true,
	domain.ReservationCancelled: true,
	domain.ReservationCompleted: true,
	domain.ReservationNoShow:    true,
}

type Service struct {
	reservations *repository.ReservationRepository
	restaurants  *repository.RestaurantRepository
	users        UserReader
	notifs       NotificationSender
}

// UserReader resolves an account for filling guest info on authenticated
// bookings.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

func NewService(
	reservations *repository.ReservationRepository,
	restaurants *repository.RestaurantRepository,
	users UserReader,
	notifs NotificationSender,
) *Service {
	return &Service{
		reservations: reservations,
		restaurants:  restaurants,
		users:        users,
		notifs:       notifs,
	}
}

func (s *Service) My(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, callerID, id string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.UserID == nil || *res.UserID != callerID {
		return nil, ErrForbidden
	}
	return res, nil
}

// Create accepts both authenticated and guest bookings. callerID is empty
// for guests; an authenticated caller without explicit guest info gets it
// filled from the account. A guest without guest info is rejected.
func (s *Service) Create(ctx context.Context, callerID string, req CreateReservationRequest) (*domain.Reservation, error) {
	restaurant, err := s.restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	var userID *string
	var guestInfo *domain.GuestInfo
	if req.GuestInfo != nil {
		guestInfo = &domain.GuestInfo{
			FirstName: req.GuestInfo.FirstName,
			LastName:  req.GuestInfo.LastName,
			Email:     req.GuestInfo.Email,
			Phone:     req.GuestInfo.Phone,
		}
	}

	if callerID != "" {
		user, err := s.users.GetByID(ctx, callerID)
		if err == nil {
			userID = &user.ID
			if guestInfo == nil {
				phone := ""
				if user.Phone != nil {
					phone = *user.Phone
				}
				guestInfo = &domain.GuestInfo{
					FirstName: user.FirstName,
					LastName:  user.LastName,
					Email:     user.Email,
					Phone:     phone,
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if guestInfo == nil {
		return nil, ErrGuestInfoRequired
	}

	res := &domain.Reservation{
		RestaurantID: req.RestaurantID,
		UserID:       userID,
		Date:         req.Date,
		Time:         req.Time,
		PartySize:    req.PartySize,
		Status:       domain.ReservationPending,
		GuestInfo:    *guestInfo,
		Notes:        req.Notes,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.NotifyReservationCreated(restaurant.OwnerID, res)
	}
	return res, nil
}

// UpdateStatus is the owner-side transition (confirm, cancel, complete,
// mark no-show).
func (s *Service) UpdateStatus(ctx context.Context, callerID, id string, status string) (*domain.Reservation, error) {
	newStatus := domain.ReservationStatus(status)
	if !ownerAllowedStatuses[newStatus] {
		return nil, ErrInvalidStatus
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	restaurant, err := s.restaurants.GetByID(ctx, res.RestaurantID)
	if err != nil || restaurant.OwnerID != callerID {
		return nil, ErrForbidden
	}

	if err := s.reservations.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	res.Status = newStatus

	if s.notifs != nil {
		s.notifs.NotifyReservationStatusChanged(restaurant.OwnerID, res)
	}
	return res, nil
}

// Cancel is the customer-side transition: the creator flips their own
// reservation to CANCELLED. The row stays for the restaurant's records.
func (s *Service) Cancel(ctx context.Context, callerID, id string) (*domain.Reservation, error) {
	res, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.UpdateStatus(ctx, id, domain.ReservationCancelled); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationCancelled

	if s.notifs != nil {
		if restaurant, err := s.restaurants.GetByID(ctx, res.RestaurantID); err == nil {
			s.notifs.NotifyReservationStatusChanged(restaurant.OwnerID, res)
		}
	}
	return res, nil
}
