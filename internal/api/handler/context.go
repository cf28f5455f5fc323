package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rozgaar/marketplace/internal/core/ports"
)

// ctxActor extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and
// the role must be present, their presence proves the middleware ran.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: userID, Role: role}, nil
}
