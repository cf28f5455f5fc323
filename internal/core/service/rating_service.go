package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/core/ports"
)

// RatingService recomputes a gig's aggregate rating from the reviews left on
// its orders. It runs asynchronously behind the rating queue; callers never
// wait on it.
type RatingService struct {
	reviews ports.ReviewRepository
	orders  ports.OrderRepository
	gigs    ports.GigRepository
	cache   GigCache
	logger  zerolog.Logger
}

func NewRatingService(
	reviews ports.ReviewRepository,
	orders ports.OrderRepository,
	gigs ports.GigRepository,
	cache GigCache,
	logger zerolog.Logger,
) *RatingService {
	return &RatingService{
		reviews: reviews,
		orders:  orders,
		gigs:    gigs,
		cache:   cache,
		logger:  logger,
	}
}

// Recompute recalculates the average rating over all reviews of the gig's
// orders and persists it on the gig, then drops the stale cache entry.
func (s *RatingService) Recompute(ctx context.Context, gigID string) error {
	gig, err := s.gigs.FindByID(ctx, gigID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	orders, err := s.orders.ListByFreelancer(ctx, gig.FreelancerID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	var orderIDs []string
	for _, o := range orders {
		if o.GigID == gigID {
			orderIDs = append(orderIDs, o.ID)
		}
	}

	reviews, err := s.reviews.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	average := 0.0
	if len(reviews) > 0 {
		average = float64(total) / float64(len(reviews))
	}

	if err := s.gigs.SetRating(ctx, gigID, average, len(reviews)); err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, gigID); err != nil {
			s.logger.Warn().Err(err).Str("gig_id", gigID).Msg("failed to invalidate gig cache after rating update")
		}
	}

	s.logger.Info().
		Str("gig_id", gigID).
		Float64("rating", average).
		Int("total_reviews", len(reviews)).
		Msg("gig rating recomputed")
	return nil
}
