package repository

import (
	"context"
	"fmt"

	"cinevibe/internal/data/entity"
	"cinevibe/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FilmRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	FindAll(ctx context.Context) ([]*entity.Film, error)
	GetOrCreate(ctx context.Context, film *entity.Film) (*entity.Film, error)
}

type filmRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

func (r *filmRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	query := `
		SELECT id, title, created_at
		FROM films
		WHERE id = $1
	`

	var film entity.Film
	err := r.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Title,
		&film.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return nil, fmt.Errorf("find film by ID %s: %w", id.String(), err)
	}

	return &film, nil
}

func (r *filmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	query := `
		SELECT id, title, created_at
		FROM films
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all films", zap.Error(err))
		return nil, fmt.Errorf("find all films: %w", err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		var film entity.Film
		err := rows.Scan(
			&film.ID,
			&film.Title,
			&film.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films = append(films, &film)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate films rows: %w", err)
	}

	return films, nil
}

// GetOrCreate inserts the film unless a row with the same title (ignoring
// case) already exists, and returns the surviving row. The upsert on the
// lower(title) unique index keeps two concurrent submissions of the same
// new title from creating duplicates.
func (r *filmRepository) GetOrCreate(ctx context.Context, film *entity.Film) (*entity.Film, error) {
	query := `
		INSERT INTO films (id, title, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT ((lower(title))) DO UPDATE SET title = films.title
		RETURNING id, title, created_at
	`

	var out entity.Film
	err := r.db.QueryRow(ctx, query,
		film.ID,
		film.Title,
		film.CreatedAt,
	).Scan(
		&out.ID,
		&out.Title,
		&out.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to get or create film",
			zap.Error(err),
			zap.String("title", film.Title),
		)
		return nil, fmt.Errorf("get or create film %s: %w", film.Title, err)
	}

	return &out, nil
}
