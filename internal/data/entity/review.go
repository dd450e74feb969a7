package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	Title   string    `db:"title"`
	Rating  int       `db:"rating"` // 1-5
	Content string    `db:"content"`
	Photo   *string   `db:"photo"`
	UserID  uuid.UUID `db:"user_id"`
	FilmID  uuid.UUID `db:"film_id"`
}

// ReviewDetail is a review joined with its author and film.
type ReviewDetail struct {
	Review
	Username  string `db:"username"`
	FilmTitle string `db:"film_title"`
}
