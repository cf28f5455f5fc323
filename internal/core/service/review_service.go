package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/api/metrics"
	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

// RatingQueue abstracts the asynchronous rating recompute dispatcher.
type RatingQueue interface {
	Enqueue(gigID string)
}

// ReviewService enforces the one-review-per-completed-order gate. Aggregate
// rating recomputation is handed off to the RatingQueue rather than done
// inline, so review creation does not block on it.
type ReviewService struct {
	reviews ports.ReviewRepository
	orders  ports.OrderRepository
	gigs    ports.GigRepository
	users   ports.UserRepository
	ratings RatingQueue
	logger  zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	orders ports.OrderRepository,
	gigs ports.GigRepository,
	users ports.UserRepository,
	ratings RatingQueue,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		orders:  orders,
		gigs:    gigs,
		users:   users,
		ratings: ratings,
		logger:  logger,
	}
}

// AddReview creates the order's single review. Only the order's client may
// review, only once the order is completed, and only once.
func (s *ReviewService) AddReview(ctx context.Context, actor ports.Actor, orderID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.ClientID {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.StatusCompleted {
		return nil, domain.ErrOrderNotCompleted
	}

	if existing, err := s.reviews.FindByOrderID(ctx, orderID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateReview
	}

	review := &domain.Review{
		OrderID:   orderID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	// The unique index on order_id is the real gate; the pre-check above only
	// provides a cleaner error on the common path.
	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.Inc()
	s.logger.Info().
		Str("order_id", orderID).
		Str("gig_id", order.GigID).
		Int("rating", rating).
		Msg("review created")

	if s.ratings != nil {
		s.ratings.Enqueue(order.GigID)
	}
	return created, nil
}

// ListGigReviews returns all reviews left on completed orders of a gig, with
// the reviewing client's name joined.
func (s *ReviewService) ListGigReviews(ctx context.Context, gigID string) ([]ports.ReviewDetail, error) {
	gig, err := s.gigs.FindByID(ctx, gigID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByFreelancer(ctx, gig.FreelancerID)
	if err != nil {
		return nil, err
	}

	var gigOrders []*domain.Order
	for _, o := range orders {
		if o.GigID == gigID {
			gigOrders = append(gigOrders, o)
		}
	}
	return s.assemble(ctx, gigOrders, gig.Title)
}

// ListFreelancerReviews returns all reviews across a freelancer's completed
// orders, with client names and gig titles joined.
func (s *ReviewService) ListFreelancerReviews(ctx context.Context, freelancerID string) ([]ports.ReviewDetail, error) {
	orders, err := s.orders.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, orders, "")
}

func (s *ReviewService) assemble(ctx context.Context, orders []*domain.Order, gigTitle string) ([]ports.ReviewDetail, error) {
	ordersByID := make(map[string]*domain.Order, len(orders))
	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		ordersByID[o.ID] = o
		orderIDs = append(orderIDs, o.ID)
	}

	reviews, err := s.reviews.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	clientNames := make(map[string]string)
	gigTitles := make(map[string]string)

	details := make([]ports.ReviewDetail, 0, len(reviews))
	for _, r := range reviews {
		order := ordersByID[r.OrderID]
		if order == nil {
			continue
		}

		if _, seen := clientNames[order.ClientID]; !seen {
			if client, err := s.users.FindByID(ctx, order.ClientID); err == nil {
				clientNames[order.ClientID] = client.Name
			} else {
				clientNames[order.ClientID] = ""
			}
		}

		title := gigTitle
		if title == "" {
			if _, seen := gigTitles[order.GigID]; !seen {
				if gig, err := s.gigs.FindByID(ctx, order.GigID); err == nil {
					gigTitles[order.GigID] = gig.Title
				} else {
					gigTitles[order.GigID] = ""
				}
			}
			title = gigTitles[order.GigID]
		}

		details = append(details, ports.ReviewDetail{
			Review:     *r,
			ClientName: clientNames[order.ClientID],
			GigTitle:   title,
		})
	}
	return details, nil
}
