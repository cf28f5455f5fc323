package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// ListGigsFilter carries all query parameters for listing gigs.
type ListGigsFilter struct {
	Search   string  // optional: partial match on title or description
	Category string  // optional: exact category match
	MinPrice float64 // optional: price >= MinPrice when > 0
	MaxPrice float64 // optional: price <= MaxPrice when > 0
	SortBy   string  // field to sort on, defaults to created_at
	Order    string  // "asc" or "desc" (default)
	Page     int     // 1-based
	Limit    int     // max rows per page (capped at 100 by service)
}

// GigRepository defines persistence operations for gigs.
type GigRepository interface {
	Create(ctx context.Context, g *domain.Gig) (*domain.Gig, error)
	FindByID(ctx context.Context, id string) (*domain.Gig, error)
	FindByFreelancer(ctx context.Context, freelancerID string) ([]*domain.Gig, error)
	// List returns a page of gigs matching filter and the total count.
	List(ctx context.Context, filter ListGigsFilter) ([]*domain.Gig, int64, error)
	Update(ctx context.Context, g *domain.Gig) error
	Delete(ctx context.Context, id string) error
	// SetRating updates the aggregate rating fields maintained by the
	// rating aggregator.
	SetRating(ctx context.Context, gigID string, rating float64, totalReviews int) error
}
