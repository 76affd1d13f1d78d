package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/devlinkhq/devlink/config"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@devlink.dev"
	password := "secret123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash, helpers.GravatarURL(email, 200)).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var profileID string
	err = db.QueryRow(`
		INSERT INTO profiles (user_id, handle, status, skills, bio)
		VALUES ($1, $2, $3, $4::text[], $5)
		ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING id
	`, userID, "demo", "Developer", "{Go,PostgreSQL}", "Seeded demo profile").Scan(&profileID)
	if err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	fmt.Printf("seeded profile: id=%s handle=demo\n", profileID)

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (user_id, body, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, "hello world from the seeded demo user", name, helpers.GravatarURL(email, 200)).Scan(&postID)
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%s\n", postID)
}
