// Seed tool: populates the database with demo designers, works and
// engagement so the app has something to show after a fresh setup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		user_id       UUID PRIMARY KEY,
		email         TEXT UNIQUE NOT NULL,
		display_name  TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS posts (
		post_id     UUID PRIMARY KEY,
		designer_id UUID NOT NULL REFERENCES users(user_id),
		caption     TEXT NOT NULL DEFAULT '',
		media_keys  TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS likes (
		post_id    UUID NOT NULL REFERENCES posts(post_id),
		user_id    UUID NOT NULL REFERENCES users(user_id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (post_id, user_id)
	);
	CREATE TABLE IF NOT EXISTS comments (
		comment_id UUID PRIMARY KEY,
		post_id    UUID NOT NULL REFERENCES posts(post_id),
		user_id    UUID NOT NULL REFERENCES users(user_id),
		body       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_posts_designer ON posts(designer_id);
	CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id, created_at);
`

var demoDesigners = []struct {
	email, name string
	captions    []string
}{
	{"asha@designerlock.app", "Asha Mwakalinga", []string{"walnut lounge chair", "brass floor lamp"}},
	{"neema@designerlock.app", "Neema Juma", []string{"kitenge tote collection", "linen summer dress"}},
	{"david@designerlock.app", "David Kessy", []string{"minimal logo set", "packaging concept"}},
}

func main() {
	var password string
	var postsPerCaption int
	flag.StringVar(&password, "password", "demo1234", "password for all seeded accounts")
	flag.IntVar(&postsPerCaption, "copies", 1, "posts to create per caption")
	flag.Parse()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	start := time.Now()
	posts := 0
	for _, d := range demoDesigners {
		designerID := uuid.New().String()
		_, err := pool.Exec(ctx, `
			INSERT INTO users (user_id, email, display_name, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
		`, designerID, d.email, d.name, string(hash))
		if err != nil {
			log.Fatalf("insert user %s: %v", d.email, err)
		}

		for _, caption := range d.captions {
			for i := 0; i < postsPerCaption; i++ {
				postID := uuid.New().String()
				mediaKey := fmt.Sprintf("works/%s/%d.jpg", postID, i+1)
				_, err := pool.Exec(ctx, `
					INSERT INTO posts (post_id, designer_id, caption, media_keys)
					VALUES ($1, $2, $3, $4)
				`, postID, designerID, caption, []string{mediaKey})
				if err != nil {
					log.Fatalf("insert post: %v", err)
				}
				posts++
			}
		}
	}

	log.Printf("seeded %d designers and %d posts in %s (password %q)",
		len(demoDesigners), posts, time.Since(start).Round(time.Millisecond), password)
}
