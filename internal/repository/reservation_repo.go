package repository

import (
	"context"

	"gorm.io/gorm"

	"deipna/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ReservationFilter narrows a restaurant's reservation listing. Date wins
// over the range bounds when both are given.
type ReservationFilter struct {
	Date      string
	StartDate string
	EndDate   string
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	var list []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("time DESC").
		Find(&list).Error
	return list, err
}

func (r *ReservationRepository) ListByRestaurant(ctx context.Context, restaurantID string, filter ReservationFilter) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("date").
		Order("time")

	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	} else {
		if filter.StartDate != "" {
			q = q.Where("date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			q = q.Where("date <= ?", filter.EndDate)
		}
	}

	var list []domain.Reservation
	err := q.Find(&list).Error
	return list, err
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}
