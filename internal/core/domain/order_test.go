package domain

import (
	"testing"
	"time"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCancellationRequested, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusDelivered, true},
		{StatusInProgress, StatusCompleted, false},
		{StatusInProgress, StatusPending, false},
		{StatusLate, StatusDelivered, true},
		{StatusLate, StatusCancelled, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusDelivered, StatusInProgress, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancellationRequested, StatusCancelled, true},
		{StatusCancellationRequested, StatusInProgress, true},
		{StatusCancellationRequested, StatusCompleted, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: want %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		StatusPending:               false,
		StatusInProgress:            false,
		StatusLate:                  false,
		StatusDelivered:             false,
		StatusCancellationRequested: false,
		StatusCompleted:             true,
		StatusCancelled:             true,
	}
	for status, want := range terminal {
		if got := status.Terminal(); got != want {
			t.Errorf("%s: Terminal() want %v, got %v", status, want, got)
		}
	}
}

func TestLateAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	cases := []struct {
		name  string
		order Order
		want  bool
	}{
		{"in_progress past due", Order{Status: StatusInProgress, DueDate: past}, true},
		{"in_progress before due", Order{Status: StatusInProgress, DueDate: future}, false},
		{"stored late past due", Order{Status: StatusLate, DueDate: past}, true},
		{"delivered past due", Order{Status: StatusDelivered, DueDate: past}, false},
		{"completed past due", Order{Status: StatusCompleted, DueDate: past}, false},
		{"pending past due", Order{Status: StatusPending, DueDate: past}, false},
		{"in_progress no due date", Order{Status: StatusInProgress}, false},
	}
	for _, c := range cases {
		if got := c.order.LateAt(now); got != c.want {
			t.Errorf("%s: want %v, got %v", c.name, c.want, got)
		}
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)

	overdue := Order{Status: StatusInProgress, DueDate: past}
	if got := overdue.EffectiveStatus(now); got != StatusLate {
		t.Errorf("overdue in_progress: want late, got %s", got)
	}
	// The stored status is untouched.
	if overdue.Status != StatusInProgress {
		t.Errorf("stored status must not change, got %s", overdue.Status)
	}

	onTime := Order{Status: StatusInProgress, DueDate: now.AddDate(0, 0, 1)}
	if got := onTime.EffectiveStatus(now); got != StatusInProgress {
		t.Errorf("on-time in_progress: want in_progress, got %s", got)
	}

	delivered := Order{Status: StatusDelivered, DueDate: past}
	if got := delivered.EffectiveStatus(now); got != StatusDelivered {
		t.Errorf("delivered: want delivered, got %s", got)
	}
}

func TestParticipant(t *testing.T) {
	o := Order{ClientID: "user_1", FreelancerID: "user_2"}
	if !o.Participant("user_1") || !o.Participant("user_2") {
		t.Error("both sides are participants")
	}
	if o.Participant("user_3") {
		t.Error("third parties are not participants")
	}
}
