package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rozgaar/marketplace/internal/core/ports"
)

// GigHandler handles HTTP requests for the gig catalog.
type GigHandler struct {
	service ports.GigService
}

func NewGigHandler(service ports.GigService) *GigHandler {
	return &GigHandler{service: service}
}

// Create handles POST /gigs.
//
// @Summary      Create a gig
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGigRequest  true  "Gig details"
// @Success      201   {object}  gigResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /gigs [post]
func (h *GigHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createGigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.CreateGig(c.Request().Context(), ports.CreateGigInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Image:        req.Image,
		DurationDays: req.DurationDays,
		FreelancerID: actor.ID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toGigResponse(*detail))
}

// List handles GET /gigs with search, category, price range, sorting, and
// pagination query parameters.
//
// @Summary      List gigs
// @Tags         gigs
// @Produce      json
// @Param        search     query     string  false  "Partial match on title or description"
// @Param        category   query     string  false  "Exact category"
// @Param        min_price  query     number  false  "Minimum price"
// @Param        max_price  query     number  false  "Maximum price"
// @Param        sort_by    query     string  false  "Sort field (default created_at)"
// @Param        order      query     string  false  "asc or desc"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listGigsResponse
// @Router       /gigs [get]
func (h *GigHandler) List(c echo.Context) error {
	filter := ports.ListGigsFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sort_by"),
		Order:    c.QueryParam("order"),
	}
	filter.MinPrice, _ = strconv.ParseFloat(c.QueryParam("min_price"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(c.QueryParam("max_price"), 64)
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListGigs(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listGigsResponse{
		Gigs:       toGigResponses(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /gigs/:id.
//
// @Summary      Get a gig
// @Tags         gigs
// @Produce      json
// @Param        id  path      string  true  "Gig id"
// @Success      200  {object}  gigResponse
// @Failure      404  {object}  map[string]string
// @Router       /gigs/{id} [get]
func (h *GigHandler) Get(c echo.Context) error {
	detail, err := h.service.GetGig(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGigResponse(*detail))
}

// My handles GET /gigs/my, the authenticated freelancer's own gigs.
//
// @Summary      List the current freelancer's gigs
// @Tags         gigs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   gigResponse
// @Failure      401  {object}  map[string]string
// @Router       /gigs/my [get]
func (h *GigHandler) My(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListFreelancerGigs(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGigResponses(details))
}

// ByFreelancer handles GET /gigs/freelancer/:freelancerId.
//
// @Summary      List a freelancer's gigs
// @Tags         gigs
// @Produce      json
// @Param        freelancerId  path      string  true  "Freelancer id"
// @Success      200           {array}   gigResponse
// @Router       /gigs/freelancer/{freelancerId} [get]
func (h *GigHandler) ByFreelancer(c echo.Context) error {
	details, err := h.service.ListFreelancerGigs(c.Request().Context(), c.Param("freelancerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGigResponses(details))
}

// Update handles PUT /gigs/:id. Only the owning freelancer may update.
//
// @Summary      Update a gig
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Gig id"
// @Param        body  body      updateGigRequest  true  "Fields to update"
// @Success      200   {object}  gigResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /gigs/{id} [put]
func (h *GigHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateGigRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.service.UpdateGig(c.Request().Context(), actor.ID, c.Param("id"), ports.UpdateGigInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Image:        req.Image,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGigResponse(*detail))
}

// Delete handles DELETE /gigs/:id. Only the owning freelancer may delete.
//
// @Summary      Delete a gig
// @Tags         gigs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Gig id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /gigs/{id} [delete]
func (h *GigHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteGig(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "gig deleted"})
}
