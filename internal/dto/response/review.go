package response

import (
	"time"

	"cinevibe/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FilmID    string    `json:"film_id"`
	FilmTitle string    `json:"film_title"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func ReviewToResponse(detail *entity.ReviewDetail) ReviewResponse {
	resp := ReviewResponse{
		ID:        detail.ID.String(),
		Title:     detail.Title,
		Rating:    detail.Rating,
		Content:   detail.Content,
		UserID:    detail.UserID.String(),
		Username:  detail.Username,
		FilmID:    detail.FilmID.String(),
		FilmTitle: detail.FilmTitle,
		CreatedAt: detail.CreatedAt,
	}

	if detail.Photo != nil {
		url := "/uploads/" + *detail.Photo
		resp.PhotoURL = &url
	}

	return resp
}
