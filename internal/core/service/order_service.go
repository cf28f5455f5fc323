package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/api/metrics"
	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

// genericStatusTargets is the fixed allowed-set for the generic
// PATCH /orders/:id/status operation.
var genericStatusTargets = map[domain.OrderStatus]struct{}{
	domain.StatusPending:    {},
	domain.StatusInProgress: {},
	domain.StatusCompleted:  {},
	domain.StatusCancelled:  {},
}

// OrderService is the order lifecycle engine. All status writes go through a
// compare-and-swap against the expected current status, and all balance
// movements go through the Ledger, so concurrent requests can never double
// apply a transition or its paired payment.
type OrderService struct {
	orders  ports.OrderRepository
	gigs    ports.GigRepository
	users   ports.UserRepository
	reviews ports.ReviewRepository
	ledger  ports.Ledger
	now     ports.Clock
	logger  zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	gigs ports.GigRepository,
	users ports.UserRepository,
	reviews ports.ReviewRepository,
	ledger ports.Ledger,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:  orders,
		gigs:    gigs,
		users:   users,
		reviews: reviews,
		ledger:  ledger,
		now:     time.Now,
		logger:  logger,
	}
}

// CreateOrder debits the client by the gig price and creates a pending order
// carrying a snapshot of that price. The debit is conditional on sufficient
// balance; when the subsequent insert fails the debit is compensated.
func (s *OrderService) CreateOrder(ctx context.Context, actor ports.Actor, in ports.CreateOrderInput) (*ports.OrderDetail, error) {
	if actor.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}

	gig, err := s.gigs.FindByID(ctx, in.GigID)
	if err != nil {
		return nil, err
	}
	if gig.FreelancerID == actor.ID {
		return nil, domain.ErrForbidden
	}

	if err := s.ledger.Debit(ctx, actor.ID, gig.Price); err != nil {
		return nil, err
	}
	metrics.LedgerMovementsTotal.WithLabelValues("charge").Inc()

	now := s.now().UTC()
	order := &domain.Order{
		GigID:        gig.ID,
		ClientID:     actor.ID,
		FreelancerID: gig.FreelancerID,
		Status:       domain.StatusPending,
		Price:        gig.Price,
		Requirements: in.Requirements,
		DueDate:      now.AddDate(0, 0, gig.DurationDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// The client was already charged; give the money back.
		if creditErr := s.ledger.Credit(ctx, actor.ID, gig.Price); creditErr != nil {
			s.logger.Error().Err(creditErr).
				Str("client_id", actor.ID).
				Float64("amount", gig.Price).
				Msg("failed to compensate debit after order insert failure")
		}
		s.logger.Error().Err(err).Str("gig_id", gig.ID).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().
		Str("order_id", created.ID).
		Str("gig_id", gig.ID).
		Str("client_id", actor.ID).
		Float64("price", gig.Price).
		Msg("order created")

	return s.assemble(ctx, created)
}

// ListOrders returns the actor's orders: clients see orders they placed,
// freelancers see orders assigned to them.
func (s *OrderService) ListOrders(ctx context.Context, actor ports.Actor) ([]ports.OrderDetail, error) {
	var (
		orders []*domain.Order
		err    error
	)
	switch actor.Role {
	case domain.RoleClient:
		orders, err = s.orders.ListByClient(ctx, actor.ID)
	case domain.RoleFreelancer:
		orders, err = s.orders.ListByFreelancer(ctx, actor.ID)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return s.assembleMany(ctx, orders)
}

// GetOrder returns a single assembled order, restricted to participants.
func (s *OrderService) GetOrder(ctx context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	order, err := s.loadForParticipant(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, order)
}

// UpdateStatus is the generic transition operation. The target must be in the
// fixed allowed-set and the move must be legal per the transition table;
// moving to completed pays the freelancer, moving to cancelled refunds the
// client.
func (s *OrderService) UpdateStatus(ctx context.Context, actor ports.Actor, orderID string, status string) (*ports.OrderDetail, error) {
	target := domain.OrderStatus(status)
	if _, ok := genericStatusTargets[target]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	order, err := s.loadForParticipant(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		metrics.TransitionsRejectedTotal.WithLabelValues("invalid_transition").Inc()
		return nil, invalidTransition(order, target, s.now())
	}
	if target == domain.StatusInProgress && order.Status == domain.StatusPending && actor.ID != order.FreelancerID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.transition(ctx, orderID, []domain.OrderStatus{order.Status}, ports.TransitionPatch{Status: target})
	if err != nil {
		return nil, err
	}

	switch target {
	case domain.StatusCompleted:
		if err := s.payFreelancer(ctx, updated); err != nil {
			return nil, err
		}
	case domain.StatusCancelled:
		if err := s.refundClient(ctx, updated); err != nil {
			return nil, err
		}
	}

	return s.assemble(ctx, updated)
}

// Deliver moves an in-progress (or late) order to delivered, storing the
// delivery file reference and notes. Only the order's freelancer may deliver.
func (s *OrderService) Deliver(ctx context.Context, actor ports.Actor, orderID string, in ports.DeliverInput) (*ports.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.FreelancerID {
		return nil, domain.ErrForbidden
	}

	fileRef := in.FileRef
	if fileRef == "" {
		// Re-delivery after rework keeps the previously uploaded file.
		fileRef = order.DeliveryFile
	}

	updated, err := s.transition(ctx, orderID,
		[]domain.OrderStatus{domain.StatusInProgress, domain.StatusLate},
		ports.TransitionPatch{
			Status:        domain.StatusDelivered,
			SetDelivery:   true,
			DeliveryFile:  fileRef,
			DeliveryNotes: in.Notes,
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Str("freelancer_id", actor.ID).Msg("order delivered")
	return s.assemble(ctx, updated)
}

// ApproveDelivery completes the order and pays the freelancer the price
// snapshot. Only the order's client may approve.
func (s *OrderService) ApproveDelivery(ctx context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.ClientID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.transition(ctx, orderID,
		[]domain.OrderStatus{domain.StatusDelivered},
		ports.TransitionPatch{Status: domain.StatusCompleted})
	if err != nil {
		return nil, err
	}

	if err := s.payFreelancer(ctx, updated); err != nil {
		return nil, err
	}
	return s.assemble(ctx, updated)
}

// RejectDelivery sends a delivered order back to in_progress for rework.
func (s *OrderService) RejectDelivery(ctx context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.ID != order.ClientID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.transition(ctx, orderID,
		[]domain.OrderStatus{domain.StatusDelivered},
		ports.TransitionPatch{Status: domain.StatusInProgress})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Msg("delivery rejected, order back in progress")
	return s.assemble(ctx, updated)
}

// RequestCancellation opens a cancellation negotiation. Either participant
// may request, from any non-terminal status without a pending request.
func (s *OrderService) RequestCancellation(ctx context.Context, actor ports.Actor, orderID string, reason string) (*ports.OrderDetail, error) {
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	if _, err := s.loadForParticipant(ctx, actor, orderID); err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, orderID,
		[]domain.OrderStatus{domain.StatusPending, domain.StatusInProgress, domain.StatusLate, domain.StatusDelivered},
		ports.TransitionPatch{
			Status:                  domain.StatusCancellationRequested,
			SetCancellationRequest:  true,
			CancellationReason:      reason,
			CancellationRequestedBy: actor.ID,
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Str("requested_by", actor.ID).Msg("cancellation requested")
	return s.assemble(ctx, updated)
}

// ApproveCancellation ratifies the counterparty's cancellation request,
// cancels the order, and refunds the client the price snapshot.
func (s *OrderService) ApproveCancellation(ctx context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	order, err := s.loadForParticipant(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.CancellationRequestedBy == actor.ID {
		// Ratification must come from the other party.
		return nil, domain.ErrForbidden
	}

	updated, err := s.transition(ctx, orderID,
		[]domain.OrderStatus{domain.StatusCancellationRequested},
		ports.TransitionPatch{
			Status:              domain.StatusCancelled,
			ApproveCancellation: true,
		})
	if err != nil {
		return nil, err
	}

	if err := s.refundClient(ctx, updated); err != nil {
		return nil, err
	}
	return s.assemble(ctx, updated)
}

// RejectCancellation declines the counterparty's cancellation request and
// puts the order back in progress, clearing the request fields.
func (s *OrderService) RejectCancellation(ctx context.Context, actor ports.Actor, orderID string) (*ports.OrderDetail, error) {
	order, err := s.loadForParticipant(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.CancellationRequestedBy == actor.ID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.transition(ctx, orderID,
		[]domain.OrderStatus{domain.StatusCancellationRequested},
		ports.TransitionPatch{
			Status:                   domain.StatusInProgress,
			ClearCancellationRequest: true,
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Str("rejected_by", actor.ID).Msg("cancellation rejected")
	return s.assemble(ctx, updated)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *OrderService) loadForParticipant(ctx context.Context, actor ports.Actor, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Participant(actor.ID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// transition performs the compare-and-swap write. On a miss the order is
// re-read to distinguish a vanished order from a concurrent transition and to
// report the actual current status.
func (s *OrderService) transition(ctx context.Context, orderID string, from []domain.OrderStatus, patch ports.TransitionPatch) (*domain.Order, error) {
	updated, err := s.orders.ApplyTransition(ctx, orderID, from, patch)
	if err == nil {
		if len(from) > 0 {
			metrics.OrderTransitionsTotal.WithLabelValues(string(from[0]), string(patch.Status)).Inc()
		}
		return updated, nil
	}
	if !errors.Is(err, domain.ErrOrderNotFound) {
		return nil, err
	}

	current, findErr := s.orders.FindByID(ctx, orderID)
	if findErr != nil {
		return nil, findErr
	}
	metrics.TransitionsRejectedTotal.WithLabelValues("precondition_failed").Inc()
	return nil, invalidTransition(current, patch.Status, s.now())
}

func (s *OrderService) payFreelancer(ctx context.Context, order *domain.Order) error {
	if err := s.ledger.Credit(ctx, order.FreelancerID, order.Price); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID).
			Str("freelancer_id", order.FreelancerID).
			Float64("amount", order.Price).
			Msg("payout failed after completion commit")
		return err
	}
	metrics.LedgerMovementsTotal.WithLabelValues("payout").Inc()
	s.logger.Info().Str("order_id", order.ID).Float64("amount", order.Price).Msg("freelancer paid")
	return nil
}

func (s *OrderService) refundClient(ctx context.Context, order *domain.Order) error {
	if err := s.ledger.Credit(ctx, order.ClientID, order.Price); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID).
			Str("client_id", order.ClientID).
			Float64("amount", order.Price).
			Msg("refund failed after cancellation commit")
		return err
	}
	metrics.LedgerMovementsTotal.WithLabelValues("refund").Inc()
	s.logger.Info().Str("order_id", order.ID).Float64("amount", order.Price).Msg("client refunded")
	return nil
}

func invalidTransition(order *domain.Order, target domain.OrderStatus, now time.Time) error {
	return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.EffectiveStatus(now), target)
}

// assemble joins the order with gig/client/freelancer summaries and its
// review, and applies the late overlay to the reported status.
func (s *OrderService) assemble(ctx context.Context, order *domain.Order) (*ports.OrderDetail, error) {
	detail := &ports.OrderDetail{
		Order:  *order,
		Status: string(order.EffectiveStatus(s.now())),
		IsLate: order.LateAt(s.now()),
	}

	if gig, err := s.gigs.FindByID(ctx, order.GigID); err == nil {
		detail.GigTitle = gig.Title
	}
	if client, err := s.users.FindByID(ctx, order.ClientID); err == nil {
		detail.ClientName = client.Name
	}
	if freelancer, err := s.users.FindByID(ctx, order.FreelancerID); err == nil {
		detail.FreelancerName = freelancer.Name
	}
	if review, err := s.reviews.FindByOrderID(ctx, order.ID); err == nil && review != nil {
		detail.Review = review
	}

	return detail, nil
}

func (s *OrderService) assembleMany(ctx context.Context, orders []*domain.Order) ([]ports.OrderDetail, error) {
	gigTitles := make(map[string]string)
	userNames := make(map[string]string)

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	reviewsByOrder := make(map[string]*domain.Review)
	if reviews, err := s.reviews.ListByOrderIDs(ctx, orderIDs); err == nil {
		for _, r := range reviews {
			reviewsByOrder[r.OrderID] = r
		}
	}

	details := make([]ports.OrderDetail, 0, len(orders))
	for _, o := range orders {
		if _, seen := gigTitles[o.GigID]; !seen {
			if gig, err := s.gigs.FindByID(ctx, o.GigID); err == nil {
				gigTitles[o.GigID] = gig.Title
			} else {
				gigTitles[o.GigID] = ""
			}
		}
		for _, userID := range []string{o.ClientID, o.FreelancerID} {
			if _, seen := userNames[userID]; !seen {
				if user, err := s.users.FindByID(ctx, userID); err == nil {
					userNames[userID] = user.Name
				} else {
					userNames[userID] = ""
				}
			}
		}

		details = append(details, ports.OrderDetail{
			Order:          *o,
			Status:         string(o.EffectiveStatus(s.now())),
			IsLate:         o.LateAt(s.now()),
			GigTitle:       gigTitles[o.GigID],
			ClientName:     userNames[o.ClientID],
			FreelancerName: userNames[o.FreelancerID],
			Review:         reviewsByOrder[o.ID],
		})
	}
	return details, nil
}
