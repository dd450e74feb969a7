package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinevibe/internal/data/entity"
	"cinevibe/internal/data/repository"
	"cinevibe/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FilmService resolves a user-supplied film reference (existing id or
// free-text new title) to a canonical film row.
type FilmService interface {
	Resolve(ctx context.Context, filmID, newTitle string) (*entity.Film, error)
	List(ctx context.Context) ([]response.FilmResponse, error)
}

type filmService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFilmService(repo *repository.Repository, log *zap.Logger) FilmService {
	return &filmService{
		repo: repo,
		log:  log.With(zap.String("service", "film")),
	}
}

func (s *filmService) Resolve(ctx context.Context, filmID, newTitle string) (*entity.Film, error) {
	newTitle = strings.TrimSpace(newTitle)

	// Existing film wins when both are supplied
	if filmID != "" {
		id, err := uuid.Parse(filmID)
		if err != nil {
			return nil, fmt.Errorf("invalid film selection %s: %w", filmID, err)
		}

		film, err := s.repo.Film.FindByID(ctx, id)
		if err != nil {
			s.log.Error("Failed to look up film", zap.Error(err), zap.String("film_id", filmID))
			return nil, fmt.Errorf("look up film: %w", err)
		}
		if film == nil {
			return nil, fmt.Errorf("film %s not found", filmID)
		}

		return film, nil
	}

	if newTitle == "" {
		return nil, fmt.Errorf("invalid film selection: choose a film or enter a new title")
	}

	// Insert-or-fetch in one statement, matched case-insensitively
	film, err := s.repo.Film.GetOrCreate(ctx, &entity.Film{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title: newTitle,
	})
	if err != nil {
		s.log.Error("Failed to resolve film title", zap.Error(err), zap.String("title", newTitle))
		return nil, fmt.Errorf("resolve film title %s: %w", newTitle, err)
	}

	s.log.Debug("Film resolved",
		zap.String("film_id", film.ID.String()),
		zap.String("title", film.Title),
	)

	return film, nil
}

func (s *filmService) List(ctx context.Context) ([]response.FilmResponse, error) {
	films, err := s.repo.Film.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list films", zap.Error(err))
		return nil, fmt.Errorf("list films: %w", err)
	}

	out := make([]response.FilmResponse, len(films))
	for i, film := range films {
		out[i] = response.FilmToResponse(film)
	}

	return out, nil
}
