package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"deipna/internal/domain"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

// SearchParams are the supported restaurant filters. Page is 0-based.
type SearchParams struct {
	Query        string
	City         string
	CuisineTypes []string
	PriceRange   string
	Page         int
	Size         int
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.db.WithContext(ctx).
		Preload("OpeningHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week")
		}).
		Where("id = ?", id).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := r.db.WithContext(ctx).
		Preload("OpeningHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week")
		}).
		Where("owner_id = ?", ownerID).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	return r.db.WithContext(ctx).
		Omit("OpeningHours").
		Save(restaurant).Error
}

func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Restaurant{}).Error
}

// Search applies the filters and returns one page plus the unpaged total.
func (r *RestaurantRepository) Search(ctx context.Context, params SearchParams) ([]domain.Restaurant, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Restaurant{})

	if name := strings.TrimSpace(params.Query); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if city := strings.TrimSpace(params.City); city != "" {
		q = q.Where("LOWER(address_city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if len(params.CuisineTypes) > 0 {
		// cuisine_types is a JSON array of quoted enum strings; substring
		// match on the quoted value works on both drivers.
		sub := r.db
		for i, ct := range params.CuisineTypes {
			pattern := "%\"" + strings.TrimSpace(ct) + "\"%"
			if i == 0 {
				sub = r.db.Where("cuisine_types LIKE ?", pattern)
			} else {
				sub = sub.Or("cuisine_types LIKE ?", pattern)
			}
		}
		q = q.Where(sub)
	}
	if pr := strings.TrimSpace(params.PriceRange); pr != "" {
		q = q.Where("price_range = ?", pr)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var restaurants []domain.Restaurant
	err := q.
		Preload("OpeningHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week")
		}).
		Order("name").
		Offset(params.Page * params.Size).
		Limit(params.Size).
		Find(&restaurants).Error
	if err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// ReplaceOpeningHours swaps the full weekly schedule in one transaction.
func (r *RestaurantRepository) ReplaceOpeningHours(ctx context.Context, restaurantID string, hours []domain.OpeningHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantID).
			Delete(&domain.OpeningHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = ""
			hours[i].RestaurantID = restaurantID
		}
		return tx.Create(&hours).Error
	})
}

func (r *RestaurantRepository) GetOpeningHoursForDay(ctx context.Context, restaurantID string, dayOfWeek int) (*domain.OpeningHours, error) {
	var h domain.OpeningHours
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND day_of_week = ?", restaurantID, dayOfWeek).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}
