package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/osse101/EasyPost_Go/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 5, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Users
	fmt.Println("--- Users ---")
	rows, err := dbPool.Query(ctx, "SELECT user_id, username, email, whatsapp_number, is_active, created_at FROM users ORDER BY user_id")
	if err != nil {
		log.Printf("Failed to query users: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id int64
			var username, email, whatsapp string
			var isActive bool
			var createdAt time.Time
			if err := rows.Scan(&id, &username, &email, &whatsapp, &isActive, &createdAt); err != nil {
				log.Printf("Failed to scan user: %v", err)
				continue
			}
			fmt.Printf("ID: %d, Username: %s, Email: %s, WhatsApp: %s, Active: %t, CreatedAt: %s\n",
				id, username, email, whatsapp, isActive, createdAt.Format(time.RFC3339))
		}
	}

	// Dump Linked Accounts (tokens redacted)
	fmt.Println("\n--- Social Accounts ---")
	query := `
		SELECT sa.social_account_id, u.username, sa.platform, sa.platform_user_id, sa.token_expires_at, sa.is_active
		FROM social_accounts sa
		JOIN users u ON sa.user_id = u.user_id
		ORDER BY sa.social_account_id
	`
	rows, err = dbPool.Query(ctx, query)
	if err != nil {
		log.Printf("Failed to query social accounts: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var id int64
			var username, platform, platformUserID string
			var expiresAt *time.Time
			var isActive bool
			if err := rows.Scan(&id, &username, &platform, &platformUserID, &expiresAt, &isActive); err != nil {
				log.Printf("Failed to scan social account: %v", err)
				continue
			}
			expiry := "never"
			if expiresAt != nil {
				expiry = expiresAt.Format(time.RFC3339)
			}
			fmt.Printf("ID: %d, User: %s, Platform: %s, PlatformUserID: %s, TokenExpires: %s, Active: %t\n",
				id, username, platform, platformUserID, expiry, isActive)
		}
	}
}
