package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// ReviewDetail joins a review with the reviewing client's name and the gig title.
type ReviewDetail struct {
	Review     domain.Review
	ClientName string
	GigTitle   string
}

// ReviewService enforces the one-review-per-completed-order gate and serves
// review listings.
type ReviewService interface {
	AddReview(ctx context.Context, actor Actor, orderID string, rating int, comment string) (*domain.Review, error)
	ListGigReviews(ctx context.Context, gigID string) ([]ReviewDetail, error)
	ListFreelancerReviews(ctx context.Context, freelancerID string) ([]ReviewDetail, error)
}
