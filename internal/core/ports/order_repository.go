package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// TransitionPatch describes the field changes applied together with a status
// transition. Flags gate which optional fields are written so that a zero
// patch only moves the status.
type TransitionPatch struct {
	Status domain.OrderStatus

	SetDelivery   bool
	DeliveryFile  string
	DeliveryNotes string

	SetCancellationRequest  bool
	CancellationReason      string
	CancellationRequestedBy string

	// ClearCancellationRequest removes the pending request fields (rejection
	// of a cancellation).
	ClearCancellationRequest bool
	// ApproveCancellation marks the request as ratified.
	ApproveCancellation bool
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]*domain.Order, error)
	// ApplyTransition executes a compare-and-swap status update: the write
	// matches only while the stored status is one of from. When no document
	// matches (missing order or concurrent transition) it returns
	// domain.ErrOrderNotFound without writing; two racing transitions from
	// the same precondition can therefore never both succeed.
	ApplyTransition(ctx context.Context, orderID string, from []domain.OrderStatus, patch TransitionPatch) (*domain.Order, error)
}
