package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"github.com/fotoprint/fotoprint/internal/catalog"
	"github.com/fotoprint/fotoprint/internal/events"
	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/storage"
)

type OrderHandler struct {
	Store    storage.Store
	Producer *events.Producer
}

type createOrderRequest struct {
	ProductType   string          `json:"productType"`
	TotalPrice    int             `json:"totalPrice"`
	PhotoSource   string          `json:"photoSource"`
	ProductConfig json.RawMessage `json:"productConfig"`

	PhotographerID      *uuid.UUID      `json:"photographerId"`
	ShootingDate        *time.Time      `json:"shootingDate"`
	ShootingTime        string          `json:"shootingTime"`
	ShootingLocation    string          `json:"shootingLocation"`
	ShootingCoordinates json.RawMessage `json:"shootingCoordinates"`

	UploadedPhotoPaths []string `json:"uploadedPhotoPaths"`
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("publish_failed", "topic", events.TopicOrderEvents, "error", err)
	}
}

// ListOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
	}

	orders, err := h.Store.ListOrdersByUser(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка получения заказов")
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder validates the tagged configuration variant at the boundary
// and persists the order, then attaches uploaded photos one by one. The
// two steps are not transactional. The total price is taken from the
// client as the source system did.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные заказа")
	}

	if !catalog.ValidProductType(req.ProductType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные заказа")
	}
	if req.PhotoSource != models.PhotoSourceUpload && req.PhotoSource != models.PhotoSourcePhotographer {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные заказа")
	}
	if req.TotalPrice < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные заказа")
	}
	if _, err := catalog.ParseConfig(req.ProductType, req.ProductConfig); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные заказа")
	}

	now := time.Now().UTC()
	order := models.Order{
		UserID:        uid,
		ProductType:   req.ProductType,
		Status:        models.StatusPending,
		TotalPrice:    req.TotalPrice,
		ProductConfig: datatypes.JSON(req.ProductConfig),
		PhotoSource:   req.PhotoSource,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.PhotoSource == models.PhotoSourcePhotographer {
		order.PhotographerID = req.PhotographerID
		order.ShootingDate = req.ShootingDate
		order.ShootingTime = req.ShootingTime
		order.ShootingLocation = req.ShootingLocation
		if len(req.ShootingCoordinates) > 0 {
			order.ShootingCoordinates = datatypes.JSON(req.ShootingCoordinates)
		}
	}

	if err := h.Store.CreateOrder(ctx, &order); err != nil {
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка создания заказа")
	}

	for _, photoPath := range req.UploadedPhotoPaths {
		photo := models.OrderPhoto{
			OrderID:    order.ID,
			PhotoPath:  photoPath,
			UploadedAt: time.Now().UTC(),
		}
		if err := h.Store.AddOrderPhoto(ctx, &photo); err != nil {
			l.Error("attach_photo_error", "order_id", order.ID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка создания заказа")
		}
	}

	h.publish(c, order.ID.String(), map[string]any{
		"type":        "order_created",
		"orderID":     order.ID,
		"userID":      uid,
		"productType": order.ProductType,
		"totalPrice":  order.TotalPrice,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

// GetOrder returns a single order to its owner or to an admin.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
	}

	id, err := pathID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверный идентификатор заказа")
	}

	order, err := h.Store.GetOrder(ctx, id)
	if err != nil {
		return httpError(err, "Заказ не найден")
	}

	if order.UserID != uid && !isAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Доступ запрещен")
	}
	return c.JSON(http.StatusOK, order)
}
