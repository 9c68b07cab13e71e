package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"deipna/internal/config"
	"deipna/internal/database"
	"deipna/internal/middleware"
	"deipna/internal/modules/auth"
	"deipna/internal/modules/reservation"
	"deipna/internal/modules/restaurant"
	"deipna/internal/notify"
	"deipna/internal/pkg/token"
	"deipna/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	revokedRepo := repository.NewRevokedTokenRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	tokens := token.New(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	hub := notify.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, refreshRepo, revokedRepo, tokens, cfg.AccessTTL, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	restaurantService := restaurant.NewService(restaurantRepo, reservationRepo)
	restaurantHandler := restaurant.NewHandler(restaurantService)

	reservationService := reservation.NewService(reservationRepo, restaurantRepo, userRepo, hub)
	reservationHandler := reservation.NewHandler(reservationService)

	notifyHandler := notify.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())

	credentialLimiter := middleware.RateLimit(5, time.Minute)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// public
		authHandler.RegisterPublicRoutes(api, credentialLimiter)
		restaurantHandler.RegisterPublicRoutes(api)
		reservationHandler.RegisterPublicRoutes(api, middleware.OptionalJWTAuth(tokens, revokedRepo))

		// protected
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(tokens, revokedRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			restaurantHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterProtectedRoutes(protected)
			notifyHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
