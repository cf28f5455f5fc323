package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

type ratingFixture struct {
	reviews *stubReviewRepo
	orders  *stubOrderRepo
	gigs    *stubGigRepo
	cache   *stubGigCache
	svc     *RatingService

	gig *domain.Gig
}

func newRatingFixture() *ratingFixture {
	f := &ratingFixture{
		reviews: newStubReviewRepo(),
		orders:  newStubOrderRepo(),
		gigs:    newStubGigRepo(),
		cache:   newStubGigCache(),
	}
	f.gig = f.gigs.seed("freelancer_1", 100, 7)
	f.svc = NewRatingService(f.reviews, f.orders, f.gigs, f.cache, discardLogger)
	return f
}

func (f *ratingFixture) seedReview(order *domain.Order, rating int) {
	if _, err := f.reviews.Create(context.Background(), &domain.Review{OrderID: order.ID, Rating: rating}); err != nil {
		panic(err)
	}
}

func TestRecompute_AveragesReviewsOfGigOrdersOnly(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()

	o1 := f.orders.seed(f.gig, "client_1", domain.StatusCompleted)
	o2 := f.orders.seed(f.gig, "client_2", domain.StatusCompleted)
	f.seedReview(o1, 5)
	f.seedReview(o2, 2)

	// Same freelancer, different gig: must not affect this gig's average.
	otherGig := f.gigs.seed("freelancer_1", 50, 3)
	o3 := f.orders.seed(otherGig, "client_1", domain.StatusCompleted)
	f.seedReview(o3, 1)

	if err := f.svc.Recompute(ctx, f.gig.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	updated, err := f.gigs.FindByID(ctx, f.gig.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if updated.Rating != 3.5 {
		t.Errorf("rating: want 3.5, got %v", updated.Rating)
	}
	if updated.TotalReviews != 2 {
		t.Errorf("total reviews: want 2, got %d", updated.TotalReviews)
	}
}

func TestRecompute_NoReviewsResetsToZero(t *testing.T) {
	f := newRatingFixture()
	ctx := context.Background()
	f.orders.seed(f.gig, "client_1", domain.StatusCompleted)

	if err := f.svc.Recompute(ctx, f.gig.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	updated, err := f.gigs.FindByID(ctx, f.gig.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if updated.Rating != 0 || updated.TotalReviews != 0 {
		t.Errorf("want 0/0, got %v/%d", updated.Rating, updated.TotalReviews)
	}
}

func TestRecompute_InvalidatesCache(t *testing.T) {
	f := newRatingFixture()
	f.cache.entries[f.gig.ID] = f.gig

	if err := f.svc.Recompute(context.Background(), f.gig.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if _, ok := f.cache.entries[f.gig.ID]; ok {
		t.Errorf("stale cache entry must be dropped")
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != f.gig.ID {
		t.Errorf("invalidations: got %v", f.cache.invalidated)
	}
}

func TestRecompute_UnknownGig(t *testing.T) {
	f := newRatingFixture()

	err := f.svc.Recompute(context.Background(), "gig_missing")
	if !errors.Is(err, domain.ErrGigNotFound) {
		t.Fatalf("expected ErrGigNotFound, got %v", err)
	}
}
