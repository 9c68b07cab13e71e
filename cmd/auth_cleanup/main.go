package main

import (
	"context"
	"log"
	"os"
	"time"

	"deipna/internal/database"
	"deipna/internal/repository"
)

// Deletes the rows the serving path never sweeps: refresh tokens that are
// expired or already revoked, and denylist entries whose blocked access
// token has expired anyway. Run from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	refreshDeleted, err := repository.NewRefreshTokenRepository(db).DeleteStale(ctx, now)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	revokedDeleted, err := repository.NewRevokedTokenRepository(db).DeleteExpired(ctx, now)
	if err != nil {
		log.Fatalf("cleanup revoked_access_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d revoked_access_tokens=%d",
		refreshDeleted, revokedDeleted)
}
