package request

import "io"

// PhotoUpload carries an uploaded poster image out of the multipart form.
type PhotoUpload struct {
	File     io.Reader
	Filename string
}

// ReviewForm is the add/edit review form. The film is either an existing
// film_id or a free-text new_film title; exactly one must be supplied.
type ReviewForm struct {
	Title   string `validate:"required,max=150"`
	Rating  int    `validate:"required,min=1,max=5"`
	Content string `validate:"required"`
	FilmID  string `validate:"omitempty,uuid4"`
	NewFilm string `validate:"omitempty,max=150"`
	Photo   *PhotoUpload
}
