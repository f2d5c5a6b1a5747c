package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/models"
	"github.com/fotoprint/fotoprint/internal/storage"
	"github.com/fotoprint/fotoprint/internal/tokens"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type TokenService struct {
	Store         storage.Store
	JWTSecret     []byte
	RefreshSecret []byte
}

type Pair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string) *http.Cookie {
	return CreateCookie(name, "", path, time.Now().Add(-time.Hour))
}

// IssuePair creates an access/refresh token pair for the user and persists
// the refresh token.
func (t *TokenService) IssuePair(ctx context.Context, user *models.User) (*Pair, error) {
	accessExp := time.Now().Add(AccessTTL)
	access, err := tokens.SignAccessToken(user.ID, user.Username, user.IsAdmin, accessExp, t.JWTSecret)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(RefreshTTL)
	refresh, jti, err := tokens.SignRefreshToken(user.ID, refreshExp, t.RefreshSecret)
	if err != nil {
		return nil, err
	}

	stored := models.RefreshToken{
		Token:     refresh,
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := t.Store.CreateRefreshToken(ctx, &stored); err != nil {
		return nil, fmt.Errorf("сохранение refresh-токена: %w", err)
	}

	return &Pair{AccessToken: access, RefreshToken: refresh, AccessExp: accessExp, RefreshExp: refreshExp}, nil
}

func (t *TokenService) SetSessionCookies(c echo.Context, pair *Pair) {
	c.SetCookie(CreateCookie("accessToken", pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(CreateCookie("refreshToken", pair.RefreshToken, "/", pair.RefreshExp))
}

func (t *TokenService) ClearSessionCookies(c echo.Context) {
	c.SetCookie(DeleteCookie("accessToken", "/"))
	c.SetCookie(DeleteCookie("refreshToken", "/"))
}

// Rotate validates a stored refresh token and issues a fresh pair.
func (t *TokenService) Rotate(ctx context.Context, rawToken string) (*Pair, *models.User, error) {
	claims, err := tokens.RefreshClaimsFromToken(rawToken, t.RefreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("невалидный refresh-токен: %w", err)
	}

	stored, err := t.Store.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, errors.New("refresh-токен не найден")
		}
		return nil, nil, err
	}
	if stored.Revoked {
		return nil, nil, errors.New("refresh-токен отозван")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, nil, errors.New("refresh-токен истёк")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, err
	}
	user, err := t.Store.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if err := t.Store.RevokeRefreshToken(ctx, rawToken); err != nil {
		return nil, nil, err
	}

	pair, err := t.IssuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) error {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return err
	}
	c.Set("userID", userID)
	c.Set("username", claims.Username)
	c.Set("isAdmin", claims.IsAdmin)
	return nil
}

// resolve authenticates the request from the session cookies, rotating via
// the refresh token when the access token has expired.
func (t *TokenService) resolve(c echo.Context) (*tokens.AccessClaims, error) {
	if asCookie, err := c.Cookie("accessToken"); err == nil {
		claims, err := tokens.AccessClaimsFromToken(asCookie.Value, t.JWTSecret)
		if err == nil {
			return claims, nil
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return nil, errors.New("нет сессии")
	}

	pair, _, err := t.Rotate(c.Request().Context(), rfCookie.Value)
	if err != nil {
		return nil, err
	}
	t.SetSessionCookies(c, pair)

	return tokens.AccessClaimsFromToken(pair.AccessToken, t.JWTSecret)
}

func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
		}
		if err := setUserContext(c, claims); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
		}
		return next(c)
	}
}

func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.resolve(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
		}
		if !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Требуются права администратора")
		}
		if err := setUserContext(c, claims); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Требуется авторизация")
		}
		return next(c)
	}
}
