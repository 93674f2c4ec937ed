package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	dbfs "github.com/garnizeh/leaddesk/db"
	"github.com/garnizeh/leaddesk/internal/auth"
	"github.com/garnizeh/leaddesk/internal/config"
	"github.com/garnizeh/leaddesk/internal/db"
	"github.com/garnizeh/leaddesk/internal/models"
	"github.com/garnizeh/leaddesk/internal/repository/sqlite"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// run migrations using internal/db.Migrate
	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	// provision the admin principal used by the dashboard; idempotent so the
	// script can run on every deploy
	email := envOr("LEADDESK_ADMIN_EMAIL", "admin@example.com")
	password := envOr("LEADDESK_ADMIN_PASSWORD", "admin1234")

	repo := sqlite.New(database)
	existing, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Admin lookup error: %v\n", err)
		os.Exit(1)
	}
	if existing == nil {
		hash, err := auth.HashPassword(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hash error: %v\n", err)
			os.Exit(1)
		}
		if _, err := repo.CreateUser(ctx, &models.User{Email: email, PasswordHash: hash, Role: "admin"}); err != nil {
			fmt.Fprintf(os.Stderr, "Admin create error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded admin user (%s)\n", email)
	}

	fmt.Println("Database initialized successfully.")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
