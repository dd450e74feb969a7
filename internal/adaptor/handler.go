package adaptor

import (
	"cinevibe/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Film   *FilmHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Film:   NewFilmHandler(service.Film, log),
		Review: NewReviewHandler(service.Review, log),
	}
}
