package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

const maxListLimit = 100

// GigCache abstracts the read-through gig cache (Redis).
type GigCache interface {
	Get(ctx context.Context, gigID string) (*domain.Gig, error)
	Set(ctx context.Context, gig *domain.Gig) error
	Invalidate(ctx context.Context, gigID string) error
}

// GigService implements the gig catalog use cases.
type GigService struct {
	gigs   ports.GigRepository
	users  ports.UserRepository
	cache  GigCache
	logger zerolog.Logger
}

func NewGigService(gigs ports.GigRepository, users ports.UserRepository, cache GigCache, logger zerolog.Logger) *GigService {
	return &GigService{gigs: gigs, users: users, cache: cache, logger: logger}
}

func (s *GigService) CreateGig(ctx context.Context, in ports.CreateGigInput) (*ports.GigDetail, error) {
	if !domain.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidCategory
	}

	image := in.Image
	if image == "" {
		image = domain.DefaultGigImage
	}
	durationDays := in.DurationDays
	if durationDays <= 0 {
		durationDays = 7
	}

	now := time.Now().UTC()
	gig := &domain.Gig{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Image:        image,
		DurationDays: durationDays,
		FreelancerID: in.FreelancerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.gigs.Create(ctx, gig)
	if err != nil {
		s.logger.Error().Err(err).Str("freelancer_id", in.FreelancerID).Msg("failed to create gig")
		return nil, err
	}

	s.logger.Info().Str("gig_id", created.ID).Str("freelancer_id", in.FreelancerID).Msg("gig created")
	return s.withFreelancerName(ctx, created), nil
}

// GetGig serves a single gig, preferring the cache. Cache misses and cache
// failures both fall through to the repository.
func (s *GigService) GetGig(ctx context.Context, id string) (*ports.GigDetail, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return s.withFreelancerName(ctx, cached), nil
		}
	}

	gig, err := s.gigs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, gig); err != nil {
			s.logger.Warn().Err(err).Str("gig_id", id).Msg("failed to cache gig")
		}
	}
	return s.withFreelancerName(ctx, gig), nil
}

func (s *GigService) ListGigs(ctx context.Context, filter ports.ListGigsFilter) (*ports.ListGigsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	gigs, total, err := s.gigs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ports.GigDetail, 0, len(gigs))
	for _, g := range gigs {
		items = append(items, *s.withFreelancerName(ctx, g))
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &ports.ListGigsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *GigService) ListFreelancerGigs(ctx context.Context, freelancerID string) ([]ports.GigDetail, error) {
	gigs, err := s.gigs.FindByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, err
	}
	items := make([]ports.GigDetail, 0, len(gigs))
	for _, g := range gigs {
		items = append(items, *s.withFreelancerName(ctx, g))
	}
	return items, nil
}

func (s *GigService) UpdateGig(ctx context.Context, actorID, gigID string, in ports.UpdateGigInput) (*ports.GigDetail, error) {
	gig, err := s.gigs.FindByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.FreelancerID != actorID {
		return nil, domain.ErrForbidden
	}

	if in.Title != "" {
		gig.Title = in.Title
	}
	if in.Description != "" {
		gig.Description = in.Description
	}
	if in.Price > 0 {
		gig.Price = in.Price
	}
	if in.Category != "" {
		if !domain.ValidCategory(in.Category) {
			return nil, domain.ErrInvalidCategory
		}
		gig.Category = in.Category
	}
	if in.Image != "" {
		gig.Image = in.Image
	}
	if in.DurationDays > 0 {
		gig.DurationDays = in.DurationDays
	}
	gig.UpdatedAt = time.Now().UTC()

	if err := s.gigs.Update(ctx, gig); err != nil {
		return nil, err
	}
	s.invalidate(ctx, gigID)
	return s.withFreelancerName(ctx, gig), nil
}

func (s *GigService) DeleteGig(ctx context.Context, actorID, gigID string) error {
	gig, err := s.gigs.FindByID(ctx, gigID)
	if err != nil {
		return err
	}
	if gig.FreelancerID != actorID {
		return domain.ErrForbidden
	}

	if err := s.gigs.Delete(ctx, gigID); err != nil {
		return err
	}
	s.invalidate(ctx, gigID)
	s.logger.Info().Str("gig_id", gigID).Msg("gig deleted")
	return nil
}

func (s *GigService) invalidate(ctx context.Context, gigID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, gigID); err != nil {
		s.logger.Warn().Err(err).Str("gig_id", gigID).Msg("failed to invalidate gig cache")
	}
}

func (s *GigService) withFreelancerName(ctx context.Context, gig *domain.Gig) *ports.GigDetail {
	detail := &ports.GigDetail{Gig: *gig}
	if user, err := s.users.FindByID(ctx, gig.FreelancerID); err == nil {
		detail.FreelancerName = user.Name
	}
	return detail
}
