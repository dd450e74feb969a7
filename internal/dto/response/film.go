package response

import "cinevibe/internal/data/entity"

type FilmResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func FilmToResponse(film *entity.Film) FilmResponse {
	return FilmResponse{
		ID:    film.ID.String(),
		Title: film.Title,
	}
}
