package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-notes-api/config"
	"github.com/oksasatya/go-notes-api/pkg/helpers"
)

// Seeds an idempotent demo user with a folder, two tags, and a couple of
// notes so the API has data to play with locally.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, full_name, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, username, "Demo User", hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", userID, username, password)

	var existing int
	if err := db.QueryRow(`SELECT COUNT(*) FROM notes WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		log.Fatalf("failed to inspect seed data: %v", err)
	}
	if existing > 0 {
		fmt.Println("demo data already present, nothing to do")
		return
	}

	var folderID string
	if err := db.QueryRow(`
		INSERT INTO folders (user_id, name) VALUES ($1, 'Inbox')
		RETURNING id
	`, userID).Scan(&folderID); err != nil {
		log.Fatalf("failed to seed folder: %v", err)
	}

	tagIDs := make([]string, 0, 2)
	for _, name := range []string{"work", "personal"} {
		var id string
		if err := db.QueryRow(`
			INSERT INTO tags (user_id, name) VALUES ($1, $2)
			RETURNING id
		`, userID, name).Scan(&id); err != nil {
			log.Fatalf("failed to seed tag %q: %v", name, err)
		}
		tagIDs = append(tagIDs, id)
	}

	notes := []struct {
		title, content string
		folder         *string
	}{
		{"Welcome to your notes", "Everything here belongs only to you.", &folderID},
		{"Untitled thoughts", "Notes without a folder are fine too.", nil},
	}
	for i, n := range notes {
		var noteID string
		if err := db.QueryRow(`
			INSERT INTO notes (user_id, title, content, folder_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, userID, n.title, n.content, n.folder).Scan(&noteID); err != nil {
			log.Fatalf("failed to seed note: %v", err)
		}
		if _, err := db.Exec(`
			INSERT INTO note_tags (note_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, noteID, tagIDs[i%len(tagIDs)]); err != nil {
			log.Fatalf("failed to seed note tag: %v", err)
		}
	}
	fmt.Println("seeded folder, tags, and notes")
}
