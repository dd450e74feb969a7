package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so startup can always run them.
func Migrate(ctx context.Context, db PgxIface, log *zap.Logger) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS films (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		// Case-insensitive uniqueness backs the create-or-find upsert
		`CREATE UNIQUE INDEX IF NOT EXISTS films_title_lower_idx
			ON films ((lower(title)))`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
			content TEXT NOT NULL,
			photo TEXT,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			film_id UUID NOT NULL REFERENCES films(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token UUID UNIQUE NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			revoked_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Error("Migration statement failed", zap.Error(err))
			return fmt.Errorf("run migration: %w", err)
		}
	}

	log.Info("Database schema up to date")
	return nil
}
