package handler

import (
	"time"

	"github.com/rozgaar/marketplace/internal/core/ports"
)

type createGigRequest struct {
	Title        string  `json:"title"         validate:"required,min=3"`
	Description  string  `json:"description"   validate:"required,min=10"`
	Price        float64 `json:"price"         validate:"required,gt=0"`
	Category     string  `json:"category"      validate:"required"`
	Image        string  `json:"image"`
	DurationDays int     `json:"duration_days" validate:"omitempty,gt=0"`
}

type updateGigRequest struct {
	Title        string  `json:"title"         validate:"omitempty,min=3"`
	Description  string  `json:"description"   validate:"omitempty,min=10"`
	Price        float64 `json:"price"         validate:"omitempty,gt=0"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	DurationDays int     `json:"duration_days" validate:"omitempty,gt=0"`
}

type gigResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	Image          string    `json:"image"`
	DurationDays   int       `json:"duration_days"`
	FreelancerID   string    `json:"freelancer_id"`
	FreelancerName string    `json:"freelancer_name,omitempty"`
	Rating         float64   `json:"rating"`
	TotalReviews   int       `json:"total_reviews"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type listGigsResponse struct {
	Gigs       []gigResponse `json:"gigs"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

func toGigResponse(d ports.GigDetail) gigResponse {
	return gigResponse{
		ID:             d.Gig.ID,
		Title:          d.Gig.Title,
		Description:    d.Gig.Description,
		Price:          d.Gig.Price,
		Category:       d.Gig.Category,
		Image:          d.Gig.Image,
		DurationDays:   d.Gig.DurationDays,
		FreelancerID:   d.Gig.FreelancerID,
		FreelancerName: d.FreelancerName,
		Rating:         d.Gig.Rating,
		TotalReviews:   d.Gig.TotalReviews,
		CreatedAt:      d.Gig.CreatedAt,
		UpdatedAt:      d.Gig.UpdatedAt,
	}
}

func toGigResponses(details []ports.GigDetail) []gigResponse {
	out := make([]gigResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toGigResponse(d))
	}
	return out
}
