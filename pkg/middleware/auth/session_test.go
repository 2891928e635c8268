package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skotchmaster/inventory_cart/pkg/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	token string
	role  string
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, accessToken string) (*tokens.AccessClaims, error) {
	f.calls++
	if accessToken != f.token {
		return nil, errors.New("unauthorized")
	}
	return &tokens.AccessClaims{Username: "admin", Role: f.role, Type: tokens.TypeAccess}, nil
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, c, err
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalls  int
	}{
		{"valid", "Bearer good", http.StatusOK, 1},
		{"missing header", "", http.StatusUnauthorized, 0},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, 0},
		{"empty token", "Bearer ", http.StatusUnauthorized, 0},
		{"revoked token", "Bearer old", http.StatusUnauthorized, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &fakeVerifier{token: "good", role: "admin"}
			m := NewSessionMiddleware(v)

			rec, c, err := runMiddleware(t, m.RequireSession, tt.header)
			assert.Equal(t, tt.wantCalls, v.calls)

			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "admin", c.Get(ContextUsername))
				assert.Equal(t, "good", c.Get(ContextToken))
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantStatus, he.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	v := &fakeVerifier{token: "good", role: "viewer"}
	m := NewSessionMiddleware(v)

	_, _, err := runMiddleware(t, m.RequireAdmin, "Bearer good")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)

	v.role = "admin"
	rec, _, err := runMiddleware(t, m.RequireAdmin, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
