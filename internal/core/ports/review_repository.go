package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews. The order_id
// column carries a unique index; Create surfaces a violation as
// domain.ErrDuplicateReview.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	// FindByOrderID returns (nil, nil) when the order has no review yet.
	FindByOrderID(ctx context.Context, orderID string) (*domain.Review, error)
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]*domain.Review, error)
}
