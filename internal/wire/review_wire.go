package wire

import (
	"cinevibe/internal/adaptor"
	"cinevibe/internal/data/repository"
	"cinevibe/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public
	r.Get("/api/reviews", reviewHandler.ListReviews)
	r.Get("/api/reviews/{id}", reviewHandler.GetReview)

	// Protected (require auth; edit and delete also require ownership,
	// enforced in the service)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
		r.Get("/api/user/reviews", reviewHandler.GetUserReviews)
		r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
