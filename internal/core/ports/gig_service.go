package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// CreateGigInput carries all data needed to list a new gig.
type CreateGigInput struct {
	Title        string
	Description  string
	Price        float64
	Category     string
	Image        string
	DurationDays int
	FreelancerID string
}

// UpdateGigInput carries the mutable gig fields. Zero values leave the
// corresponding field unchanged.
type UpdateGigInput struct {
	Title        string
	Description  string
	Price        float64
	Category     string
	Image        string
	DurationDays int
}

// GigDetail joins a gig with its freelancer's display name.
type GigDetail struct {
	Gig            domain.Gig
	FreelancerName string
}

// ListGigsResult is returned by ListGigs.
type ListGigsResult struct {
	Items      []GigDetail
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GigService defines use-case operations for the gig catalog.
type GigService interface {
	CreateGig(ctx context.Context, in CreateGigInput) (*GigDetail, error)
	GetGig(ctx context.Context, id string) (*GigDetail, error)
	ListGigs(ctx context.Context, filter ListGigsFilter) (*ListGigsResult, error)
	ListFreelancerGigs(ctx context.Context, freelancerID string) ([]GigDetail, error)
	// UpdateGig and DeleteGig reject actors other than the owning freelancer.
	UpdateGig(ctx context.Context, actorID, gigID string, in UpdateGigInput) (*GigDetail, error)
	DeleteGig(ctx context.Context, actorID, gigID string) error
}
