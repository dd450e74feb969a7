package adaptor

import (
	"net/http"

	"cinevibe/internal/usecase"
	"cinevibe/pkg/utils"

	"go.uber.org/zap"
)

type FilmHandler struct {
	service usecase.FilmService
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		log:     log.With(zap.String("handler", "film")),
	}
}

// ListFilms handles GET /api/films (public), serves the review form
// dropdown.
func (h *FilmHandler) ListFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error("Failed to list films", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", films)
}
