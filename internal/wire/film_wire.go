package wire

import (
	"cinevibe/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFilm(r chi.Router, filmHandler *adaptor.FilmHandler) {
	// Public, feeds the add/edit review form
	r.Get("/api/films", filmHandler.ListFilms)
}
