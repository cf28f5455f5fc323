package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

type gigFixture struct {
	gigs  *stubGigRepo
	users *stubUserRepo
	cache *stubGigCache
	svc   *GigService

	freelancer *domain.User
}

func newGigFixture() *gigFixture {
	f := &gigFixture{
		gigs:  newStubGigRepo(),
		users: newStubUserRepo(),
		cache: newStubGigCache(),
	}
	f.freelancer = f.users.seed("Frank", domain.RoleFreelancer, 0)
	f.svc = NewGigService(f.gigs, f.users, f.cache, discardLogger)
	return f
}

func TestCreateGig_AppliesDefaults(t *testing.T) {
	f := newGigFixture()

	detail, err := f.svc.CreateGig(context.Background(), ports.CreateGigInput{
		Title:        "Landing page",
		Description:  "A fast static landing page",
		Price:        150,
		Category:     "Web Development",
		FreelancerID: f.freelancer.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Gig.Image != domain.DefaultGigImage {
		t.Errorf("missing image must fall back to default, got %q", detail.Gig.Image)
	}
	if detail.Gig.DurationDays != 7 {
		t.Errorf("missing duration must default to 7, got %d", detail.Gig.DurationDays)
	}
	if detail.FreelancerName != "Frank" {
		t.Errorf("freelancer name not joined, got %q", detail.FreelancerName)
	}
}

func TestCreateGig_RejectsUnknownCategory(t *testing.T) {
	f := newGigFixture()

	_, err := f.svc.CreateGig(context.Background(), ports.CreateGigInput{
		Title:        "Something",
		Description:  "Something else",
		Price:        10,
		Category:     "Underwater Basket Weaving",
		FreelancerID: f.freelancer.ID,
	})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestGetGig_CacheMissPopulatesCache(t *testing.T) {
	f := newGigFixture()
	gig := f.gigs.seed(f.freelancer.ID, 100, 7)

	detail, err := f.svc.GetGig(context.Background(), gig.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Gig.ID != gig.ID {
		t.Errorf("wrong gig: %q", detail.Gig.ID)
	}
	if _, ok := f.cache.entries[gig.ID]; !ok {
		t.Errorf("cache must be populated after a miss")
	}
}

func TestGetGig_CacheHitSkipsRepository(t *testing.T) {
	f := newGigFixture()
	cached := &domain.Gig{ID: "gig_cached", Title: "From cache", FreelancerID: f.freelancer.ID}
	f.cache.entries[cached.ID] = cached

	// Not present in the repo: a hit is the only way this can succeed.
	detail, err := f.svc.GetGig(context.Background(), cached.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Gig.Title != "From cache" {
		t.Errorf("expected the cached copy, got %q", detail.Gig.Title)
	}
}

func TestGetGig_CacheFailureFallsThrough(t *testing.T) {
	f := newGigFixture()
	gig := f.gigs.seed(f.freelancer.ID, 100, 7)
	f.cache.getErr = errors.New("redis down")

	detail, err := f.svc.GetGig(context.Background(), gig.ID)
	if err != nil {
		t.Fatalf("cache failure must not break reads: %v", err)
	}
	if detail.Gig.ID != gig.ID {
		t.Errorf("wrong gig: %q", detail.Gig.ID)
	}
}

func TestGetGig_NotFound(t *testing.T) {
	f := newGigFixture()

	_, err := f.svc.GetGig(context.Background(), "gig_missing")
	if !errors.Is(err, domain.ErrGigNotFound) {
		t.Fatalf("expected ErrGigNotFound, got %v", err)
	}
}

func TestListGigs_PaginationDefaultsAndCaps(t *testing.T) {
	f := newGigFixture()
	for i := 0; i < 25; i++ {
		f.gigs.seed(f.freelancer.ID, float64(10+i), 7)
	}
	ctx := context.Background()

	res, err := f.svc.ListGigs(ctx, ports.ListGigsFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Limit != 20 || len(res.Items) != 20 {
		t.Errorf("default page size: want 20, got limit=%d items=%d", res.Limit, len(res.Items))
	}
	if res.Total != 25 || res.TotalPages != 2 {
		t.Errorf("totals: want 25/2, got %d/%d", res.Total, res.TotalPages)
	}

	res, err = f.svc.ListGigs(ctx, ports.ListGigsFilter{Limit: 500})
	if err != nil {
		t.Fatalf("list capped: %v", err)
	}
	if res.Limit != 100 {
		t.Errorf("limit must be capped at 100, got %d", res.Limit)
	}

	res, err = f.svc.ListGigs(ctx, ports.ListGigsFilter{Page: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(res.Items) != 5 {
		t.Errorf("page 2: want 5 items, got %d", len(res.Items))
	}
}

func TestListGigs_PriceFilter(t *testing.T) {
	f := newGigFixture()
	f.gigs.seed(f.freelancer.ID, 50, 7)
	f.gigs.seed(f.freelancer.ID, 150, 7)
	f.gigs.seed(f.freelancer.ID, 300, 7)

	res, err := f.svc.ListGigs(context.Background(), ports.ListGigsFilter{MinPrice: 100, MaxPrice: 200})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 1 || res.Items[0].Gig.Price != 150 {
		t.Errorf("price filter: want the 150 gig only, got total=%d", res.Total)
	}
}

func TestUpdateGig_OwnerOnly(t *testing.T) {
	f := newGigFixture()
	gig := f.gigs.seed(f.freelancer.ID, 100, 7)
	other := f.users.seed("Fiona", domain.RoleFreelancer, 0)

	_, err := f.svc.UpdateGig(context.Background(), other.ID, gig.ID, ports.UpdateGigInput{Title: "Hijacked"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateGig_PartialAndInvalidatesCache(t *testing.T) {
	f := newGigFixture()
	gig := f.gigs.seed(f.freelancer.ID, 100, 7)

	detail, err := f.svc.UpdateGig(context.Background(), f.freelancer.ID, gig.ID, ports.UpdateGigInput{Price: 250})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if detail.Gig.Price != 250 {
		t.Errorf("price: want 250, got %v", detail.Gig.Price)
	}
	if detail.Gig.Title != gig.Title {
		t.Errorf("untouched fields must survive, title got %q", detail.Gig.Title)
	}
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != gig.ID {
		t.Errorf("cache must be invalidated on update, got %v", f.cache.invalidated)
	}
}

func TestUpdateGig_RejectsUnknownCategory(t *testing.T) {
	f := newGigFixture()
	gig := f.gigs.seed(f.freelancer.ID, 100, 7)

	_, err := f.svc.UpdateGig(context.Background(), f.freelancer.ID, gig.ID, ports.UpdateGigInput{Category: "Nope"})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestDeleteGig_OwnerOnlyAndInvalidatesCache(t *testing.T) {
	f := newGigFixture()
	gig := f.gigs.seed(f.freelancer.ID, 100, 7)
	other := f.users.seed("Fiona", domain.RoleFreelancer, 0)
	ctx := context.Background()

	if err := f.svc.DeleteGig(ctx, other.ID, gig.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := f.svc.DeleteGig(ctx, f.freelancer.ID, gig.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.gigs.FindByID(ctx, gig.ID); !errors.Is(err, domain.ErrGigNotFound) {
		t.Errorf("gig must be gone, got %v", err)
	}
	if len(f.cache.invalidated) != 1 {
		t.Errorf("cache must be invalidated on delete, got %v", f.cache.invalidated)
	}
}
