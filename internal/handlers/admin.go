package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/util"
)

// AdminListOrders returns every order, newest first. Supports optional
// page/size query parameters.
func (h *OrderHandler) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Store.ListOrders(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_orders_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка получения всех заказов")
	}

	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		return c.JSON(http.StatusOK, orders)
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total := len(orders)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders[offset:end],
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

// AdminUpdateOrderStatus sets the order status. Any of the four states may
// be set from any other; unknown values are rejected.
func (h *OrderHandler) AdminUpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := pathID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверный идентификатор заказа")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Статус не указан")
	}
	if !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Недопустимый статус заказа")
	}

	order, err := h.Store.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		l.Warn("update_status_error", "order_id", id, "error", err)
		return httpError(err, "Заказ не найден")
	}

	h.publish(c, order.ID.String(), map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})

	l.Info("update_status_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AdminListOrderPhotos(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := pathID(c, "orderId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверный идентификатор заказа")
	}

	photos, err := h.Store.ListOrderPhotos(ctx, orderID)
	if err != nil {
		logging.FromContext(ctx).Error("list_order_photos_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка получения фотографий заказа")
	}
	return c.JSON(http.StatusOK, photos)
}

// AdminStats aggregates order counts per status and total revenue for the
// admin dashboard.
func (h *OrderHandler) AdminStats(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Store.ListOrders(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("admin_stats_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка получения статистики")
	}

	byStatus := map[string]int{
		models.StatusPending:    0,
		models.StatusProcessing: 0,
		models.StatusReady:      0,
		models.StatusDelivered:  0,
	}
	revenue := 0
	for _, o := range orders {
		byStatus[o.Status]++
		revenue += o.TotalPrice
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total_orders": len(orders),
		"by_status":    byStatus,
		"revenue":      revenue,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
