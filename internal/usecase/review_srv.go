package usecase

import (
	"context"
	"fmt"
	"time"

	"cinevibe/internal/data/entity"
	"cinevibe/internal/data/repository"
	"cinevibe/internal/dto/request"
	"cinevibe/internal/dto/response"
	"cinevibe/pkg/storage"
	"cinevibe/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	Create(ctx context.Context, userID string, form *request.ReviewForm) (*response.ReviewResponse, error)
	Get(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	ListByUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Update(ctx context.Context, reviewID, userID string, form *request.ReviewForm) (*response.ReviewResponse, error)
	Delete(ctx context.Context, reviewID, userID string) error
}

type reviewService struct {
	repo   *repository.Repository
	films  FilmService
	photos storage.PhotoStore
	log    *zap.Logger
}

func NewReviewService(repo *repository.Repository, films FilmService, photos storage.PhotoStore, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		films:  films,
		photos: photos,
		log:    log.With(zap.String("service", "review")),
	}
}

// Create runs the authoring pipeline: validate, resolve film, store the
// photo, insert the row. Nothing is written to disk or the reviews table
// until validation has passed; a failed insert cleans up the just-stored
// photo so no orphan file survives.
func (s *reviewService) Create(ctx context.Context, userID string, form *request.ReviewForm) (*response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	film, err := s.films.Resolve(ctx, form.FilmID, form.NewFilm)
	if err != nil {
		return nil, err
	}

	photoName, err := s.storePhoto(ctx, form.Photo)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:   form.Title,
		Rating:  form.Rating,
		Content: form.Content,
		Photo:   photoName,
		UserID:  userUUID,
		FilmID:  film.ID,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.cleanupPhoto(photoName)
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("film_id", film.ID.String()),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID),
		zap.String("film_id", film.ID.String()),
		zap.Int("rating", form.Rating),
	)

	return s.buildResponse(ctx, review.ID)
}

func (s *reviewService) Get(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	detail, err := s.repo.Review.FindDetailByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to get review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get review: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	resp := response.ReviewToResponse(detail)
	return &resp, nil
}

func (s *reviewService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return response.NewPaginatedResponse(toReviewResponses(reviews), req.Page, req.PerPage, total), nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list user reviews", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("list user reviews: %w", err)
	}

	total, err := s.repo.Review.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user reviews", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("count user reviews: %w", err)
	}

	return response.NewPaginatedResponse(toReviewResponses(reviews), req.Page, req.PerPage, total), nil
}

// Update re-runs the full authoring pipeline on an owned review. The
// stored photo is replaced only when the form carries a new file; the
// superseded file is removed best-effort after the row update commits.
func (s *reviewService) Update(ctx context.Context, reviewID, userID string, form *request.ReviewForm) (*response.ReviewResponse, error) {
	review, err := s.findOwnedReview(ctx, reviewID, userID, "edit")
	if err != nil {
		return nil, err
	}

	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	film, err := s.films.Resolve(ctx, form.FilmID, form.NewFilm)
	if err != nil {
		return nil, err
	}

	newPhoto, err := s.storePhoto(ctx, form.Photo)
	if err != nil {
		return nil, err
	}

	oldPhoto := review.Photo

	review.Title = form.Title
	review.Rating = form.Rating
	review.Content = form.Content
	review.FilmID = film.ID
	if newPhoto != nil {
		review.Photo = newPhoto
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.cleanupPhoto(newPhoto)
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	// Advisory cleanup of the replaced file
	if newPhoto != nil {
		s.cleanupPhoto(oldPhoto)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.Int("rating", form.Rating),
	)

	return s.buildResponse(ctx, review.ID)
}

func (s *reviewService) Delete(ctx context.Context, reviewID, userID string) error {
	review, err := s.findOwnedReview(ctx, reviewID, userID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	// Advisory cleanup of the now-unreferenced file
	s.cleanupPhoto(review.Photo)

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) validateForm(form *request.ReviewForm) error {
	if errs := utils.ValidateStruct(form); len(errs) > 0 {
		s.log.Warn("Review validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Extension check happens before anything is stored
	if form.Photo != nil && !storage.AllowedFile(form.Photo.Filename) {
		return fmt.Errorf("invalid file type: please upload an image (png, jpg, jpeg, gif)")
	}

	return nil
}

// findOwnedReview loads the review and enforces the ownership rule.
func (s *reviewService) findOwnedReview(ctx context.Context, reviewID, userID, action string) (*entity.Review, error) {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	if review.UserID != userUUID {
		s.log.Warn("Ownership check failed",
			zap.String("review_id", reviewID),
			zap.String("user_id", userID),
			zap.String("action", action),
		)
		return nil, fmt.Errorf("forbidden: you can only %s your own reviews", action)
	}

	return review, nil
}

func (s *reviewService) storePhoto(ctx context.Context, photo *request.PhotoUpload) (*string, error) {
	if photo == nil {
		return nil, nil
	}

	name, err := s.photos.Save(ctx, photo.File, photo.Filename)
	if err != nil {
		s.log.Error("Failed to store photo", zap.Error(err), zap.String("filename", photo.Filename))
		return nil, fmt.Errorf("store photo: %w", err)
	}

	return &name, nil
}

func (s *reviewService) cleanupPhoto(name *string) {
	if name == nil {
		return
	}
	if err := s.photos.Remove(*name); err != nil {
		s.log.Warn("Failed to remove photo file", zap.Error(err), zap.String("photo", *name))
	}
}

func (s *reviewService) buildResponse(ctx context.Context, id uuid.UUID) (*response.ReviewResponse, error) {
	detail, err := s.repo.Review.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load review %s: %w", id.String(), err)
	}
	if detail == nil {
		return nil, fmt.Errorf("review %s not found", id.String())
	}

	resp := response.ReviewToResponse(detail)
	return &resp, nil
}

func toReviewResponses(reviews []*entity.ReviewDetail) []response.ReviewResponse {
	out := make([]response.ReviewResponse, len(reviews))
	for i, detail := range reviews {
		out[i] = response.ReviewToResponse(detail)
	}
	return out
}
