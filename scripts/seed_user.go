package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/creatorloop/creatorloop-api/pkg/auth"
)

func main() {
	fmt.Println("adding seed user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	SEED_EMAIL := os.Getenv("SEED_EMAIL")
	SEED_USERNAME := os.Getenv("SEED_USERNAME")
	SEED_PASSWORD := os.Getenv("SEED_PASSWORD")
	SEED_ROLE := os.Getenv("SEED_ROLE")
	if SEED_ROLE == "" {
		SEED_ROLE = "member"
	}

	hash, err := auth.HashPassword(SEED_PASSWORD)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, email, username, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET password_hash = $4, role = $5
	`
	_, err = pool.Exec(context.Background(), query, uuid.New(), SEED_EMAIL, SEED_USERNAME, hash, SEED_ROLE)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated user '%s' successfully!\n", SEED_EMAIL)
}
