package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/inventory_cart/internal/service"
	"github.com/Skotchmaster/inventory_cart/internal/transport"
	middleware "github.com/Skotchmaster/inventory_cart/pkg/middleware/auth"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		l.Warn("login_error", "status", 400, "reason", "missing credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("login_error", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_error", "status", 500, "reason", "cannot store session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store session")
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, success(transport.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}))
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.RefreshToken == "" {
		l.Warn("refresh_error", "status", 400, "reason", "missing refresh token")
		return echo.NewHTTPError(http.StatusBadRequest, "refreshToken is required")
	}

	pair, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("refresh_error", "status", 401, "reason", "refresh rejected")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or revoked refresh token")
		}
		l.Error("refresh_error", "status", 500, "reason", "cannot store session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store session")
	}

	l.Info("refresh_success")
	return c.JSON(http.StatusOK, success(transport.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	token, _ := c.Get(middleware.ContextToken).(string)
	if err := h.Svc.Logout(ctx, token); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("logout_error", "status", 401, "reason", "session already replaced")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or revoked token")
		}
		l.Error("logout_error", "status", 500, "reason", "cannot clear session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear session")
	}

	l.Info("logout_success")
	return c.JSON(http.StatusOK, transport.Envelope{Status: "success"})
}
