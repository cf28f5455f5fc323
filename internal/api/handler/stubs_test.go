package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

// newTestContext builds an echo context with the request validator installed,
// the way the router configures it.
func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	return newTestContext(method, target, strings.NewReader(body))
}

func authenticate(c echo.Context, userID, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerErr error
	loginErr    error
	user        *domain.User
	token       string

	addedAmount float64
}

func (s *stubAuthService) Register(_ context.Context, name, email, _, role string) (string, *domain.User, error) {
	if s.registerErr != nil {
		return "", nil, s.registerErr
	}
	u := &domain.User{ID: "user_1", Name: name, Email: email, Role: role}
	if role == "" {
		u.Role = domain.RoleClient
	}
	s.user = u
	return s.token, u, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, &domain.User{ID: "user_1", Email: email}, nil
}

func (s *stubAuthService) GetUser(_ context.Context, id string) (*domain.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, domain.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubAuthService) AddBalance(_ context.Context, userID string, amount float64) (*domain.User, error) {
	s.addedAmount = amount
	return &domain.User{ID: userID, Balance: amount}, nil
}

// stubOrderService records the last actor and input and replies with a fixed
// detail or error.
type stubOrderService struct {
	detail *ports.OrderDetail
	err    error

	lastActor  ports.Actor
	lastOrder  string
	lastStatus string
	lastInput  ports.CreateOrderInput
	lastDeliver ports.DeliverInput
	lastReason string
}

func (s *stubOrderService) reply() (*ports.OrderDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubOrderService) CreateOrder(_ context.Context, actor ports.Actor, in ports.CreateOrderInput) (*ports.OrderDetail, error) {
	s.lastActor, s.lastInput = actor, in
	return s.reply()
}

func (s *stubOrderService) ListOrders(_ context.Context, actor ports.Actor) ([]ports.OrderDetail, error) {
	s.lastActor = actor
	if s.err != nil {
		return nil, s.err
	}
	if s.detail == nil {
		return nil, nil
	}
	return []ports.OrderDetail{*s.detail}, nil
}

func (s *stubOrderService) GetOrder(_ context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder = actor, orderID
	return s.reply()
}

func (s *stubOrderService) UpdateStatus(_ context.Context, actor ports.Actor, orderID string, status string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder, s.lastStatus = actor, orderID, status
	return s.reply()
}

func (s *stubOrderService) Deliver(_ context.Context, actor ports.Actor, orderID string, in ports.DeliverInput) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder, s.lastDeliver = actor, orderID, in
	return s.reply()
}

func (s *stubOrderService) ApproveDelivery(_ context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder = actor, orderID
	return s.reply()
}

func (s *stubOrderService) RejectDelivery(_ context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder = actor, orderID
	return s.reply()
}

func (s *stubOrderService) RequestCancellation(_ context.Context, actor ports.Actor, orderID string, reason string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder, s.lastReason = actor, orderID, reason
	return s.reply()
}

func (s *stubOrderService) ApproveCancellation(_ context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder = actor, orderID
	return s.reply()
}

func (s *stubOrderService) RejectCancellation(_ context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	s.lastActor, s.lastOrder = actor, orderID
	return s.reply()
}

type stubReviewService struct {
	review  *domain.Review
	details []ports.ReviewDetail
	err     error

	lastActor  ports.Actor
	lastOrder  string
	lastRating int
}

func (s *stubReviewService) AddReview(_ context.Context, actor ports.Actor, orderID string, rating int, _ string) (*domain.Review, error) {
	s.lastActor, s.lastOrder, s.lastRating = actor, orderID, rating
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) ListGigReviews(_ context.Context, _ string) ([]ports.ReviewDetail, error) {
	return s.details, s.err
}

func (s *stubReviewService) ListFreelancerReviews(_ context.Context, _ string) ([]ports.ReviewDetail, error) {
	return s.details, s.err
}

type stubMessageService struct {
	detail  *ports.MessageDetail
	details []ports.MessageDetail
	err     error

	lastActor   ports.Actor
	lastOrder   string
	lastContent string
}

func (s *stubMessageService) AddMessage(_ context.Context, actor ports.Actor, orderID string, content string) (*ports.MessageDetail, error) {
	s.lastActor, s.lastOrder, s.lastContent = actor, orderID, content
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubMessageService) ListMessages(_ context.Context, actor ports.Actor, orderID string) ([]ports.MessageDetail, error) {
	s.lastActor, s.lastOrder = actor, orderID
	return s.details, s.err
}

type stubGigService struct {
	detail *ports.GigDetail
	list   *ports.ListGigsResult
	items  []ports.GigDetail
	err    error

	lastActorID string
	lastGigID   string
	lastCreate  ports.CreateGigInput
	lastUpdate  ports.UpdateGigInput
	lastFilter  ports.ListGigsFilter
	deleted     []string
}

func (s *stubGigService) CreateGig(_ context.Context, in ports.CreateGigInput) (*ports.GigDetail, error) {
	s.lastCreate = in
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubGigService) GetGig(_ context.Context, id string) (*ports.GigDetail, error) {
	s.lastGigID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubGigService) ListGigs(_ context.Context, filter ports.ListGigsFilter) (*ports.ListGigsResult, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubGigService) ListFreelancerGigs(_ context.Context, freelancerID string) ([]ports.GigDetail, error) {
	s.lastActorID = freelancerID
	return s.items, s.err
}

func (s *stubGigService) UpdateGig(_ context.Context, actorID, gigID string, in ports.UpdateGigInput) (*ports.GigDetail, error) {
	s.lastActorID, s.lastGigID, s.lastUpdate = actorID, gigID, in
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubGigService) DeleteGig(_ context.Context, actorID, gigID string) error {
	s.lastActorID = actorID
	s.deleted = append(s.deleted, gigID)
	return s.err
}

type stubFileStore struct {
	ref      string
	err      error
	stored   []string
	contents []byte
}

func (s *stubFileStore) Store(_ context.Context, filename string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.stored = append(s.stored, filename)
	b, _ := io.ReadAll(r)
	s.contents = b
	return s.ref, nil
}
