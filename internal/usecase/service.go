package usecase

import (
	"cinevibe/internal/data/repository"
	"cinevibe/pkg/storage"
	"cinevibe/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Film   FilmService
	Review ReviewService
}

func NewService(repo *repository.Repository, photos storage.PhotoStore, config *utils.Config, log *zap.Logger) *Service {
	films := NewFilmService(repo, log)

	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Film:   films,
		Review: NewReviewService(repo, films, photos, log),
	}
}
