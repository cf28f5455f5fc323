package domain

import (
	"errors"
	"time"
)

var ErrGigNotFound = errors.New("gig not found")
var ErrInvalidCategory = errors.New("invalid gig category")

// DefaultGigImage is used when a gig is created without an image URL.
const DefaultGigImage = "https://placehold.co/600x400"

// GigCategories is the fixed set of categories a gig may belong to.
var GigCategories = []string{
	"Web Development",
	"Mobile Development",
	"Graphic Design",
	"Content Writing",
	"Digital Marketing",
}

// ValidCategory reports whether c is a known gig category.
func ValidCategory(c string) bool {
	for _, known := range GigCategories {
		if known == c {
			return true
		}
	}
	return false
}

// Gig is a freelancer's listed service offering. Price and DurationDays are
// read-only inputs to order creation; Rating and TotalReviews are maintained
// by the rating aggregator.
type Gig struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Price        float64   `json:"price" bson:"price"`
	Category     string    `json:"category" bson:"category"`
	Image        string    `json:"image" bson:"image"`
	DurationDays int       `json:"duration_days" bson:"duration_days"`
	FreelancerID string    `json:"freelancer_id" bson:"freelancer_id"`
	Rating       float64   `json:"rating" bson:"rating"`
	TotalReviews int       `json:"total_reviews" bson:"total_reviews"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
