package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/events"
	"github.com/fotoprint/fotoprint/internal/hash"
	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/service/token"
	"github.com/fotoprint/fotoprint/internal/storage"
)

type AuthHandler struct {
	Store    storage.Store
	Tokens   *token.TokenService
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("publish_failed", "topic", topic, "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные для регистрации")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные для регистрации")
	}

	if _, err := h.Store.GetUserByUsername(ctx, req.Username); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Пользователь с таким именем уже существует")
	} else if !errors.Is(err, storage.ErrNotFound) {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: pwHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}

	// Auto-login after registration.
	pair, err := h.Tokens.IssuePair(ctx, &user)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
	h.Tokens.SetSessionCookies(c, pair)

	h.publish(c, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "username", user.Username)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Неверные данные для входа")
	}

	user, err := h.Store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Неверное имя пользователя или пароль")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusBadRequest, "Неверное имя пользователя или пароль")
	}

	pair, err := h.Tokens.IssuePair(ctx, user)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
	h.Tokens.SetSessionCookies(c, pair)

	h.publish(c, events.TopicUserEvents, user.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login_success", "username", user.Username)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if refreshCookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Store.RevokeRefreshToken(ctx, refreshCookie.Value); err != nil {
			h.Tokens.ClearSessionCookies(c)
			l.Error("logout_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка выхода")
		}
	}

	h.Tokens.ClearSessionCookies(c)
	l.Info("logout_success")
	return c.NoContent(http.StatusOK)
}

// CurrentUser returns the identity resolved by the session middleware.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Не авторизован")
	}

	user, err := h.Store.GetUser(ctx, id)
	if err != nil {
		return httpError(err, "Пользователь не найден")
	}
	return c.JSON(http.StatusOK, user)
}
