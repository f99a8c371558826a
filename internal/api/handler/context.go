package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmmemories/backend/internal/core/domain"
)

// principal extracts the authenticated user injected by the Auth middleware.
// Its presence proves the middleware ran; handlers behind the auth gate must
// never see a request without it.
func principal(c echo.Context) (*domain.User, error) {
	user, ok := c.Get("principal").(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
