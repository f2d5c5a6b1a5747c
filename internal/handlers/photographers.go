package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/storage"
)

type PhotographerHandler struct {
	Store storage.Store
}

func (h *PhotographerHandler) ListPhotographers(c echo.Context) error {
	ctx := c.Request().Context()

	photographers, err := h.Store.ListPhotographers(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_photographers_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка получения списка фотографов")
	}
	return c.JSON(http.StatusOK, photographers)
}

func (h *PhotographerHandler) GetPhotographer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверный идентификатор фотографа")
	}

	photographer, err := h.Store.GetPhotographer(ctx, id)
	if err != nil {
		return httpError(err, "Фотограф не найден")
	}
	return c.JSON(http.StatusOK, photographer)
}
