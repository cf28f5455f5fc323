package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rozgaar/marketplace/internal/core/ports"
)

// OrderHandler handles HTTP requests for the order lifecycle, including the
// order's review and message sub-resources.
type OrderHandler struct {
	orders   ports.OrderService
	reviews  ports.ReviewService
	messages ports.MessageService
	files    ports.FileStore
}

func NewOrderHandler(orders ports.OrderService, reviews ports.ReviewService, messages ports.MessageService, files ports.FileStore) *OrderHandler {
	return &OrderHandler{orders: orders, reviews: reviews, messages: messages, files: files}
}

// Create handles POST /orders. The caller is charged the gig price up front.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.orders.CreateOrder(c.Request().Context(), actor, ports.CreateOrderInput{
		GigID:        req.GigID,
		Requirements: req.Requirements,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(*detail))
}

// List handles GET /orders, returning the actor's orders on either side of
// the market.
//
// @Summary      List the current user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderResponse
// @Failure      401  {object}  map[string]string
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	details, err := h.orders.ListOrders(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(details))
}

// Get handles GET /orders/:id, restricted to participants.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.orders.GetOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// UpdateStatus handles PATCH /orders/:id/status, the generic transition.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.orders.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// Deliver handles POST /orders/:id/deliver. The body is multipart form data
// with an optional "file" part and an optional "notes" field; on re-delivery
// without a file the previous upload is kept.
//
// @Summary      Deliver work on an order
// @Tags         orders
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Order id"
// @Param        file   formData  file    false  "Delivery file"
// @Param        notes  formData  string  false  "Delivery notes"
// @Success      200    {object}  orderResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.DeliverInput{Notes: c.FormValue("notes")}

	if fh, err := c.FormFile("file"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
		}
		defer src.Close()

		ref, err := h.files.Store(c.Request().Context(), fh.Filename, src)
		if err != nil {
			return err
		}
		in.FileRef = ref
	}

	detail, err := h.orders.Deliver(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// ApproveDelivery handles POST /orders/:id/approve: completes the order and
// pays the freelancer.
//
// @Summary      Approve a delivery
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /orders/{id}/approve [post]
func (h *OrderHandler) ApproveDelivery(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.orders.ApproveDelivery(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// RejectDelivery handles POST /orders/:id/reject: sends the order back for
// rework.
//
// @Summary      Reject a delivery
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /orders/{id}/reject [post]
func (h *OrderHandler) RejectDelivery(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.orders.RejectDelivery(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// RequestCancellation handles POST /orders/:id/cancel.
//
// @Summary      Request cancellation of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order id"
// @Param        body  body      cancelOrderRequest  true  "Cancellation reason"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) RequestCancellation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req cancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	detail, err := h.orders.RequestCancellation(c.Request().Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// ApproveCancellation handles POST /orders/:id/approve-cancellation: cancels
// the order and refunds the client.
//
// @Summary      Approve a cancellation request
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /orders/{id}/approve-cancellation [post]
func (h *OrderHandler) ApproveCancellation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.orders.ApproveCancellation(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// RejectCancellation handles POST /orders/:id/reject-cancellation: declines
// the request and resumes work.
//
// @Summary      Reject a cancellation request
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /orders/{id}/reject-cancellation [post]
func (h *OrderHandler) RejectCancellation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	detail, err := h.orders.RejectCancellation(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*detail))
}

// AddReview handles POST /orders/:id/review.
//
// @Summary      Review a completed order
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Order id"
// @Param        body  body      addReviewRequest  true  "Rating and comment"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /orders/{id}/review [post]
func (h *OrderHandler) AddReview(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	review, err := h.reviews.AddReview(c.Request().Context(), actor, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// AddMessage handles POST /orders/:id/messages.
//
// @Summary      Post a message on an order
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Order id"
// @Param        body  body      addMessageRequest  true  "Message content"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /orders/{id}/messages [post]
func (h *OrderHandler) AddMessage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req addMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	detail, err := h.messages.AddMessage(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMessageResponse(*detail))
}

// ListMessages handles GET /orders/:id/messages.
//
// @Summary      List an order's messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {array}   messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /orders/{id}/messages [get]
func (h *OrderHandler) ListMessages(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	details, err := h.messages.ListMessages(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]messageResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toMessageResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}
