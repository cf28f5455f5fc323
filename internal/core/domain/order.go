package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending               OrderStatus = "pending"
	StatusInProgress            OrderStatus = "in_progress"
	StatusDelivered             OrderStatus = "delivered"
	StatusCompleted             OrderStatus = "completed"
	StatusCancelled             OrderStatus = "cancelled"
	StatusCancellationRequested OrderStatus = "cancellation_requested"
	StatusLate                  OrderStatus = "late"
)

// validTransitions defines the allowed state machine transitions.
// StatusLate appears as a source only for documents persisted by older
// deployments that stored the late overlay destructively; it behaves exactly
// like in_progress.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:               {StatusInProgress, StatusCancellationRequested, StatusCancelled},
	StatusInProgress:            {StatusDelivered, StatusCancellationRequested, StatusCancelled},
	StatusLate:                  {StatusDelivered, StatusCancellationRequested, StatusCancelled},
	StatusDelivered:             {StatusCompleted, StatusInProgress, StatusCancellationRequested},
	StatusCancellationRequested: {StatusCancelled, StatusInProgress},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidStatus = errors.New("invalid status")
var ErrForbidden = errors.New("access forbidden")
var ErrReasonRequired = errors.New("cancellation reason is required")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Order is the aggregate root for the purchase lifecycle. Price is a snapshot
// of the gig price at creation time and never changes afterwards.
type Order struct {
	ID                      string      `json:"id" bson:"_id,omitempty"`
	GigID                   string      `json:"gig_id" bson:"gig_id"`
	ClientID                string      `json:"client_id" bson:"client_id"`
	FreelancerID            string      `json:"freelancer_id" bson:"freelancer_id"`
	Status                  OrderStatus `json:"status" bson:"status"`
	Price                   float64     `json:"price" bson:"price"`
	Requirements            string      `json:"requirements" bson:"requirements"`
	DueDate                 time.Time   `json:"due_date" bson:"due_date"`
	DeliveryFile            string      `json:"delivery_file,omitempty" bson:"delivery_file,omitempty"`
	DeliveryNotes           string      `json:"delivery_notes,omitempty" bson:"delivery_notes,omitempty"`
	CancellationReason      string      `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	CancellationRequestedBy string      `json:"cancellation_requested_by,omitempty" bson:"cancellation_requested_by,omitempty"`
	CancellationApproved    bool        `json:"cancellation_approved" bson:"cancellation_approved"`
	CreatedAt               time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at" bson:"updated_at"`
}

// Participant reports whether userID is the client or freelancer of the order.
func (o *Order) Participant(userID string) bool {
	return userID == o.ClientID || userID == o.FreelancerID
}

// LateAt reports whether the order has missed its due date while still being
// worked on. Lateness is a derived projection: the stored status is not
// rewritten on reads.
func (o *Order) LateAt(now time.Time) bool {
	if o.Status != StatusInProgress && o.Status != StatusLate {
		return false
	}
	return !o.DueDate.IsZero() && o.DueDate.Before(now)
}

// EffectiveStatus returns the status visible to callers at the given time:
// in_progress orders past their due date are reported as late.
func (o *Order) EffectiveStatus(now time.Time) OrderStatus {
	if o.LateAt(now) {
		return StatusLate
	}
	return o.Status
}
