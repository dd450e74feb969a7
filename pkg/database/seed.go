package database

import (
	"context"
	"fmt"
	"time"

	"cinevibe/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sampleReview struct {
	title   string
	rating  int
	content string
	user    string
	film    string
}

// SeedSampleData populates demo users, films and reviews so the listing
// is not empty on first run. Every insert is conflict-tolerant, so
// re-running is harmless.
func SeedSampleData(ctx context.Context, db PgxIface, log *zap.Logger) error {
	users := []string{"alice", "bob", "charlie"}

	for _, username := range users {
		hash, err := utils.HashPassword("password123")
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		_, err = db.Exec(ctx, `
			INSERT INTO users (id, username, password, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (username) DO NOTHING
		`, uuid.New(), username, hash, time.Now())
		if err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
	}

	films := []string{
		"The Matrix",
		"Inception",
		"Interstellar",
		"The Shawshank Redemption",
		"Pulp Fiction",
		"The Dark Knight",
		"Forrest Gump",
		"Fight Club",
		"The Godfather",
		"Goodfellas",
	}

	for _, title := range films {
		_, err := db.Exec(ctx, `
			INSERT INTO films (id, title, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT ((lower(title))) DO NOTHING
		`, uuid.New(), title, time.Now())
		if err != nil {
			return fmt.Errorf("seed film %s: %w", title, err)
		}
	}

	reviews := []sampleReview{
		{
			title:   "Mind-bending masterpiece",
			rating:  5,
			content: "The Matrix redefined sci-fi cinema. The action sequences are groundbreaking and the philosophical themes are thought-provoking. A must-watch for any film enthusiast.",
			user:    "alice",
			film:    "The Matrix",
		},
		{
			title:   "Nolan's best work",
			rating:  5,
			content: "Inception is a visually stunning journey through dreams within dreams. The concept is brilliant and the execution is flawless. Hans Zimmer's score elevates every scene.",
			user:    "bob",
			film:    "Inception",
		},
		{
			title:   "Space epic done right",
			rating:  4,
			content: "Interstellar combines hard science with emotional storytelling. The visuals are breathtaking and the ending is both confusing and beautiful. Not perfect but definitely worth watching.",
			user:    "charlie",
			film:    "Interstellar",
		},
	}

	for _, rv := range reviews {
		_, err := db.Exec(ctx, `
			INSERT INTO reviews (id, title, rating, content, user_id, film_id, created_at)
			SELECT $1, $2, $3, $4, users.id, films.id, $5
			FROM users, films
			WHERE users.username = $6
			  AND lower(films.title) = lower($7)
			  AND NOT EXISTS (
				SELECT 1 FROM reviews r
				JOIN users u ON r.user_id = u.id
				WHERE u.username = $6 AND r.title = $2
			  )
		`, uuid.New(), rv.title, rv.rating, rv.content, time.Now(), rv.user, rv.film)
		if err != nil {
			return fmt.Errorf("seed review %q: %w", rv.title, err)
		}
	}

	log.Info("Sample data seeded",
		zap.Int("users", len(users)),
		zap.Int("films", len(films)),
		zap.Int("reviews", len(reviews)),
	)

	return nil
}
