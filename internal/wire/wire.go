package wire

import (
	"net/http"

	"cinevibe/internal/adaptor"
	"cinevibe/internal/data/repository"
	"cinevibe/internal/usecase"
	"cinevibe/pkg/middleware"
	"cinevibe/pkg/storage"
	"cinevibe/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, photos storage.PhotoStore, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, photos, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Routes
	wireAuth(r, handler.Auth, repo, logger)
	wireFilm(r, handler.Film)
	wireReview(r, handler.Review, repo, logger)

	// Stored poster images
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Upload.Dir)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
