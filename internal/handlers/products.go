package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/events"
	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/storage"
)

type ProductHandler struct {
	Store    storage.Store
	Producer *events.Producer
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Store.ListProducts(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_products_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка получения списка продуктов")
	}
	return c.JSON(http.StatusOK, products)
}

// PatchProduct updates the admin-editable catalog fields. The product name
// is fixed at creation and cannot be changed here.
func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := pathID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверный идентификатор продукта")
	}

	var req struct {
		DisplayName *string `json:"displayName"`
		Description *string `json:"description"`
		BasePrice   *int    `json:"basePrice"`
		Image       *string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные продукта")
	}
	if req.BasePrice != nil && *req.BasePrice < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные продукта")
	}

	updated, err := h.Store.UpdateProduct(ctx, id, storage.ProductUpdate{
		DisplayName: req.DisplayName,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Image:       req.Image,
	})
	if err != nil {
		l.Warn("patch_product_error", "error", err)
		return httpError(err, "Продукт не найден")
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, events.TopicProductEvents, updated.ID.String(), map[string]any{
		"type":      "product_updated",
		"productID": updated.ID,
		"name":      updated.Name,
	}); err != nil {
		l.Error("publish_failed", "topic", events.TopicProductEvents, "error", err)
	}

	return c.JSON(http.StatusOK, updated)
}
