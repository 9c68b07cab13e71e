package main

import (
	"log"
	"os"

	"deipna/internal/database"
	"deipna/internal/domain"
	"deipna/internal/pkg/password"
)

func strPtr(v string) *string { return &v }

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "deipna.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM restaurant_opening_hours")
	db.Exec("DELETE FROM restaurants")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM revoked_access_tokens")
	db.Exec("DELETE FROM users")

	ownerHash, err := password.Hash("owner-password-123")
	if err != nil {
		log.Fatal(err)
	}
	customerHash, err := password.Hash("customer-password-123")
	if err != nil {
		log.Fatal(err)
	}

	owner := domain.User{
		Email:     "owner@deipna.dev",
		Password:  ownerHash,
		FirstName: "Olive",
		LastName:  "Garnier",
		Role:      domain.RoleRestaurantOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Fatal(err)
	}

	customer := domain.User{
		Email:     "customer@deipna.dev",
		Password:  customerHash,
		FirstName: "Chris",
		LastName:  "Diner",
		Phone:     strPtr("+33700000000"),
		Role:      domain.RoleCustomer,
	}
	if err := db.Create(&customer).Error; err != nil {
		log.Fatal(err)
	}

	moderate := domain.PriceModerate
	bistro := domain.Restaurant{
		Name:        "Le Petit Jardin",
		Description: strPtr("Seasonal French bistro near the canal"),
		Phone:       strPtr("+33123456789"),
		Email:       strPtr("contact@petitjardin.fr"),
		Address: domain.Address{
			Street:     "12 Rue des Lilas",
			City:       "Paris",
			PostalCode: "75010",
			Country:    "France",
		},
		CuisineTypes: []domain.CuisineType{domain.CuisineFrench, domain.CuisineMediterranean},
		PriceRange:   &moderate,
		Features:     []domain.RestaurantFeature{domain.FeatureTerrace, domain.FeatureWifi},
		OwnerID:      owner.ID,
	}
	if err := db.Create(&bistro).Error; err != nil {
		log.Fatal(err)
	}

	// Open Tuesday to Sunday, closed Monday
	var hours []domain.OpeningHours
	for day := 0; day <= 6; day++ {
		h := domain.OpeningHours{
			RestaurantID: bistro.ID,
			DayOfWeek:    day,
			OpenTime:     "12:00",
			CloseTime:    "22:30",
		}
		if day == 1 {
			h.IsClosed = true
			h.OpenTime = "00:00"
			h.CloseTime = "00:00"
		}
		hours = append(hours, h)
	}
	if err := db.Create(&hours).Error; err != nil {
		log.Fatal(err)
	}

	reservation := domain.Reservation{
		RestaurantID: bistro.ID,
		UserID:       &customer.ID,
		Date:         "2026-09-12",
		Time:         "19:30",
		PartySize:    2,
		Status:       domain.ReservationConfirmed,
		GuestInfo: domain.GuestInfo{
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Email:     customer.Email,
			Phone:     "+33700000000",
		},
	}
	if err := db.Create(&reservation).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Seed completed: 2 users, 1 restaurant, 7 opening-hour rows, 1 reservation")
}
