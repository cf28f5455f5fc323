package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rozgaar/marketplace/internal/core/ports"
)

// ReviewHandler serves the public review listings.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ByGig handles GET /reviews/gig/:gigId.
//
// @Summary      List a gig's reviews
// @Tags         reviews
// @Produce      json
// @Param        gigId  path      string  true  "Gig id"
// @Success      200    {array}   reviewResponse
// @Failure      404    {object}  map[string]string
// @Router       /reviews/gig/{gigId} [get]
func (h *ReviewHandler) ByGig(c echo.Context) error {
	details, err := h.service.ListGigReviews(c.Request().Context(), c.Param("gigId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(details))
}

// ByFreelancer handles GET /reviews/freelancer/:freelancerId.
//
// @Summary      List a freelancer's reviews
// @Tags         reviews
// @Produce      json
// @Param        freelancerId  path      string  true  "Freelancer id"
// @Success      200           {array}   reviewResponse
// @Router       /reviews/freelancer/{freelancerId} [get]
func (h *ReviewHandler) ByFreelancer(c echo.Context) error {
	details, err := h.service.ListFreelancerReviews(c.Request().Context(), c.Param("freelancerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(details))
}

func toReviewResponses(details []ports.ReviewDetail) []reviewResponse {
	out := make([]reviewResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toReviewResponse(d))
	}
	return out
}
