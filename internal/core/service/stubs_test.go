package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) seed(name, role string, balance float64) *domain.User {
	r.seq++
	u := &domain.User{
		ID:      fmt.Sprintf("user_%d", r.seq),
		Name:    name,
		Email:   strings.ToLower(name) + "@example.com",
		Role:    role,
		Balance: balance,
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Credit(_ context.Context, accountID string, amount float64) error {
	u, ok := r.users[accountID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Balance += amount
	return nil
}

// Debit mirrors the real conditional write: check and decrement together.
func (r *stubUserRepo) Debit(_ context.Context, accountID string, amount float64) error {
	u, ok := r.users[accountID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Balance < amount {
		return &domain.InsufficientFundsError{Required: amount, Current: u.Balance}
	}
	u.Balance -= amount
	return nil
}

func (r *stubUserRepo) balance(id string) float64 {
	return r.users[id].Balance
}

type stubGigRepo struct {
	gigs map[string]*domain.Gig
	seq  int
}

func newStubGigRepo() *stubGigRepo {
	return &stubGigRepo{gigs: make(map[string]*domain.Gig)}
}

func (r *stubGigRepo) seed(freelancerID string, price float64, durationDays int) *domain.Gig {
	r.seq++
	g := &domain.Gig{
		ID:           fmt.Sprintf("gig_%d", r.seq),
		Title:        fmt.Sprintf("Gig %d", r.seq),
		Description:  "does a thing, reliably",
		Price:        price,
		Category:     "Web Development",
		DurationDays: durationDays,
		FreelancerID: freelancerID,
	}
	r.gigs[g.ID] = g
	return g
}

func (r *stubGigRepo) Create(_ context.Context, g *domain.Gig) (*domain.Gig, error) {
	r.seq++
	clone := *g
	clone.ID = fmt.Sprintf("gig_%d", r.seq)
	r.gigs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGigRepo) FindByID(_ context.Context, id string) (*domain.Gig, error) {
	g, ok := r.gigs[id]
	if !ok {
		return nil, domain.ErrGigNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGigRepo) FindByFreelancer(_ context.Context, freelancerID string) ([]*domain.Gig, error) {
	var out []*domain.Gig
	for _, g := range r.gigs {
		if g.FreelancerID == freelancerID {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubGigRepo) List(_ context.Context, f ports.ListGigsFilter) ([]*domain.Gig, int64, error) {
	var matched []*domain.Gig
	for _, g := range r.gigs {
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		if f.MinPrice > 0 && g.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && g.Price > f.MaxPrice {
			continue
		}
		if f.Search != "" {
			titleMatch := strings.Contains(strings.ToLower(g.Title), strings.ToLower(f.Search))
			descMatch := strings.Contains(strings.ToLower(g.Description), strings.ToLower(f.Search))
			if !titleMatch && !descMatch {
				continue
			}
		}
		clone := *g
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return nil, total, nil
	}
	end := skip + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubGigRepo) Update(_ context.Context, g *domain.Gig) error {
	if _, ok := r.gigs[g.ID]; !ok {
		return domain.ErrGigNotFound
	}
	clone := *g
	r.gigs[g.ID] = &clone
	return nil
}

func (r *stubGigRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.gigs[id]; !ok {
		return domain.ErrGigNotFound
	}
	delete(r.gigs, id)
	return nil
}

func (r *stubGigRepo) SetRating(_ context.Context, gigID string, rating float64, totalReviews int) error {
	g, ok := r.gigs[gigID]
	if !ok {
		return domain.ErrGigNotFound
	}
	g.Rating = rating
	g.TotalReviews = totalReviews
	return nil
}

type stubOrderRepo struct {
	orders    map[string]*domain.Order
	seq       int
	createErr error // if set, Create returns this error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) seed(gig *domain.Gig, clientID string, status domain.OrderStatus) *domain.Order {
	r.seq++
	o := &domain.Order{
		ID:           fmt.Sprintf("order_%d", r.seq),
		GigID:        gig.ID,
		ClientID:     clientID,
		FreelancerID: gig.FreelancerID,
		Status:       status,
		Price:        gig.Price,
	}
	r.orders[o.ID] = o
	return o
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.seq)
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) ListByFreelancer(_ context.Context, freelancerID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.FreelancerID == freelancerID {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ApplyTransition mirrors the real conditional write: the stored status must
// still be one of from, otherwise nothing is written.
func (r *stubOrderRepo) ApplyTransition(_ context.Context, orderID string, from []domain.OrderStatus, patch ports.TransitionPatch) (*domain.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	allowed := false
	for _, s := range from {
		if o.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrOrderNotFound
	}

	o.Status = patch.Status
	o.UpdatedAt = time.Now().UTC()
	if patch.SetDelivery {
		o.DeliveryFile = patch.DeliveryFile
		o.DeliveryNotes = patch.DeliveryNotes
	}
	if patch.SetCancellationRequest {
		o.CancellationReason = patch.CancellationReason
		o.CancellationRequestedBy = patch.CancellationRequestedBy
	}
	if patch.ClearCancellationRequest {
		o.CancellationReason = ""
		o.CancellationRequestedBy = ""
	}
	if patch.ApproveCancellation {
		o.CancellationApproved = true
	}

	clone := *o
	return &clone, nil
}

type stubReviewRepo struct {
	byOrder map[string]*domain.Review
	seq     int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byOrder: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) (*domain.Review, error) {
	if _, ok := r.byOrder[rev.OrderID]; ok {
		return nil, domain.ErrDuplicateReview
	}
	r.seq++
	clone := *rev
	clone.ID = fmt.Sprintf("review_%d", r.seq)
	r.byOrder[clone.OrderID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) FindByOrderID(_ context.Context, orderID string) (*domain.Review, error) {
	rev, ok := r.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	clone := *rev
	return &clone, nil
}

func (r *stubReviewRepo) ListByOrderIDs(_ context.Context, orderIDs []string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, id := range orderIDs {
		if rev, ok := r.byOrder[id]; ok {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubMessageRepo struct {
	messages []*domain.Message
	seq      int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.seq++
	clone := *m
	clone.ID = fmt.Sprintf("message_%d", r.seq)
	r.messages = append(r.messages, &clone)
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.messages {
		if m.OrderID == orderID {
			clone := *m
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// stubRatingQueue records enqueued gig ids synchronously.
type stubRatingQueue struct {
	gigIDs []string
}

func (q *stubRatingQueue) Enqueue(gigID string) {
	q.gigIDs = append(q.gigIDs, gigID)
}

// stubGigCache is a map-backed GigCache recording invalidations.
type stubGigCache struct {
	entries     map[string]*domain.Gig
	invalidated []string
	getErr      error
}

func newStubGigCache() *stubGigCache {
	return &stubGigCache{entries: make(map[string]*domain.Gig)}
}

func (c *stubGigCache) Get(_ context.Context, gigID string) (*domain.Gig, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	g, ok := c.entries[gigID]
	if !ok {
		return nil, nil
	}
	clone := *g
	return &clone, nil
}

func (c *stubGigCache) Set(_ context.Context, gig *domain.Gig) error {
	clone := *gig
	c.entries[gig.ID] = &clone
	return nil
}

func (c *stubGigCache) Invalidate(_ context.Context, gigID string) error {
	delete(c.entries, gigID)
	c.invalidated = append(c.invalidated, gigID)
	return nil
}
