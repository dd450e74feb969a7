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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ReviewDetail, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.ReviewDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ReviewDetail, error)
	CountAll(ctx context.Context) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, title, rating, content, photo, user_id, film_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.Title,
		review.Rating,
		review.Content,
		review.Photo,
		review.UserID,
		review.FilmID,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("film_id", review.FilmID.String()),
		)
		return fmt.Errorf("create review for film %s by user %s: %w",
			review.FilmID.String(), review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, title, rating, content, photo, user_id, film_id, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.Title,
		&review.Rating,
		&review.Content,
		&review.Photo,
		&review.UserID,
		&review.FilmID,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ReviewDetail, error) {
	query := `
		SELECT reviews.id, reviews.title, reviews.rating, reviews.content,
		       reviews.photo, reviews.user_id, reviews.film_id, reviews.created_at,
		       users.username, films.title AS film_title
		FROM reviews
		JOIN users ON reviews.user_id = users.id
		JOIN films ON reviews.film_id = films.id
		WHERE reviews.id = $1
	`

	var detail entity.ReviewDetail
	err := r.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Rating,
		&detail.Content,
		&detail.Photo,
		&detail.UserID,
		&detail.FilmID,
		&detail.CreatedAt,
		&detail.Username,
		&detail.FilmTitle,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review detail",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review detail %s: %w", id.String(), err)
	}

	return &detail, nil
}

func (r *reviewRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.ReviewDetail, error) {
	query := `
		SELECT reviews.id, reviews.title, reviews.rating, reviews.content,
		       reviews.photo, reviews.user_id, reviews.film_id, reviews.created_at,
		       users.username, films.title AS film_title
		FROM reviews
		JOIN users ON reviews.user_id = users.id
		JOIN films ON reviews.film_id = films.id
		ORDER BY reviews.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all reviews",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all reviews limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return scanReviewDetails(rows, r.log)
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ReviewDetail, error) {
	query := `
		SELECT reviews.id, reviews.title, reviews.rating, reviews.content,
		       reviews.photo, reviews.user_id, reviews.film_id, reviews.created_at,
		       users.username, films.title AS film_title
		FROM reviews
		JOIN users ON reviews.user_id = users.id
		JOIN films ON reviews.film_id = films.id
		WHERE reviews.user_id = $1
		ORDER BY reviews.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReviewDetails(rows, r.log)
}

func scanReviewDetails(rows pgx.Rows, log *zap.Logger) ([]*entity.ReviewDetail, error) {
	var reviews []*entity.ReviewDetail
	for rows.Next() {
		var detail entity.ReviewDetail
		err := rows.Scan(
			&detail.ID,
			&detail.Title,
			&detail.Rating,
			&detail.Content,
			&detail.Photo,
			&detail.UserID,
			&detail.FilmID,
			&detail.CreatedAt,
			&detail.Username,
			&detail.FilmTitle,
		)
		if err != nil {
			log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &detail)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reviews rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count all reviews: %w", err)
	}

	return count, nil
}

func (r *reviewRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reviews by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET title = $2, rating = $3, content = $4, photo = $5, film_id = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Title,
		review.Rating,
		review.Content,
		review.Photo,
		review.FilmID,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
