package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/storage"
)

// userID extracts the authenticated user id placed in the context by the
// session middleware.
func userID(c echo.Context) (uuid.UUID, error) {
	v, ok := c.Get("userID").(uuid.UUID)
	if !ok || v == uuid.Nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return v, nil
}

func isAdmin(c echo.Context) bool {
	v, _ := c.Get("isAdmin").(bool)
	return v
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// httpError maps storage errors to the boundary taxonomy: missing rows are
// 404, everything else is an internal 500.
func httpError(err error, notFoundMsg string) *echo.HTTPError {
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
}
