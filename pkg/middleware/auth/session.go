package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/inventory_cart/pkg/logging"
	"github.com/Skotchmaster/inventory_cart/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	ContextUsername = "username"
	ContextRole     = "role"
	ContextToken    = "access_token"
)

var ErrMissingBearer = errors.New("missing bearer token")

// Verifier checks an access token against the live session.
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*tokens.AccessClaims, error)
}

type SessionMiddleware struct {
	Verifier Verifier
}

func NewSessionMiddleware(v Verifier) *SessionMiddleware {
	return &SessionMiddleware{Verifier: v}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireSessionWithValidator(next, nil)
}

func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireSessionWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *SessionMiddleware) requireSessionWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "session")

		token, err := BearerToken(c.Request())
		if err != nil {
			l.Info("session_rejected", "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization bearer token required")
		}

		claims, err := m.Verifier.Verify(ctx, token)
		if err != nil {
			l.Info("session_rejected", "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or revoked token")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		setUserContext(c, claims, token)
		return next(c)
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(r *http.Request) (string, error) {
	typ, token, ok := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if !ok || typ != "Bearer" {
		return "", ErrMissingBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims, token string) {
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextToken, token)
}
