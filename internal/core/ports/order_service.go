package ports

import (
	"context"
	"time"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   string
	Role string
}

// CreateOrderInput carries the data needed to place a new order.
type CreateOrderInput struct {
	GigID        string
	Requirements string
}

// DeliverInput carries the delivery payload. FileRef is the stored path
// reference returned by the file store, empty when no file was uploaded.
type DeliverInput struct {
	FileRef string
	Notes   string
}

// OrderDetail is the assembled order view: the order itself plus summaries of
// the related entities joined at read time. Status is the effective status
// (late overlay applied); the stored status is never exposed separately.
type OrderDetail struct {
	Order          domain.Order
	Status         string
	IsLate         bool
	GigTitle       string
	ClientName     string
	FreelancerName string
	Review         *domain.Review
}

// OrderService is the order lifecycle engine. Every operation loads the
// order, authorizes the actor, validates the transition against the central
// transition table, applies it, and performs the paired ledger movement when
// the transition has a financial effect.
type OrderService interface {
	CreateOrder(ctx context.Context, actor Actor, in CreateOrderInput) (*OrderDetail, error)
	ListOrders(ctx context.Context, actor Actor) ([]OrderDetail, error)
	GetOrder(ctx context.Context, actor Actor, orderID string) (*OrderDetail, error)
	// UpdateStatus is the generic transition operation; status must be one of
	// pending, in_progress, completed, cancelled.
	UpdateStatus(ctx context.Context, actor Actor, orderID string, status string) (*OrderDetail, error)
	Deliver(ctx context.Context, actor Actor, orderID string, in DeliverInput) (*OrderDetail, error)
	ApproveDelivery(ctx context.Context, actor Actor, orderID string) (*OrderDetail, error)
	RejectDelivery(ctx context.Context, actor Actor, orderID string) (*OrderDetail, error)
	RequestCancellation(ctx context.Context, actor Actor, orderID string, reason string) (*OrderDetail, error)
	ApproveCancellation(ctx context.Context, actor Actor, orderID string) (*OrderDetail, error)
	RejectCancellation(ctx context.Context, actor Actor, orderID string) (*OrderDetail, error)
}

// Clock abstracts time for the late overlay and due date computation.
type Clock func() time.Time
