package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Skotchmaster/inventory_cart/internal/repo"
	"github.com/Skotchmaster/inventory_cart/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func newTestAuth(t *testing.T) (*AuthService, *repo.SessionRepo, *testClock) {
	t.Helper()
	dir := t.TempDir()
	r := repo.NewFileRepo(
		filepath.Join(dir, "products.json"),
		filepath.Join(dir, "carts.json"),
		filepath.Join(dir, "auth_tokens.json"),
	)

	pwHash, err := hash.HashPassword("admin123")
	require.NoError(t, err)

	clock := &testClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return &AuthService{
		Sessions:      r.Session,
		Username:      "admin",
		PasswordHash:  pwHash,
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		Now:           clock.Now,
	}, r.Session, clock
}

func TestAuth_LoginAndVerify(t *testing.T) {
	a, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	pair, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := a.Verify(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	sess, err := sessions.GetSession(ctx)
	require.NoError(t, err)
	require.True(t, sess.Active())
	assert.Equal(t, pair.AccessToken, *sess.AccessToken)
	assert.Equal(t, pair.RefreshToken, *sess.RefreshToken)
	require.NotNil(t, sess.IssuedAt)
}

func TestAuth_LoginRejected(t *testing.T) {
	a, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	tests := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"root", "admin123"},
		{"", "admin123"},
		{"admin", ""},
		{"Admin", "admin123"},
	}
	for _, tt := range tests {
		_, err := a.Login(ctx, tt.user, tt.pass)
		assert.ErrorIs(t, err, ErrUnauthorized, "%q/%q", tt.user, tt.pass)
	}

	sess, err := sessions.GetSession(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Active())
}

func TestAuth_RefreshRotatesAndRejectsReplay(t *testing.T) {
	a, _, _ := newTestAuth(t)
	ctx := context.Background()

	first, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	second, err := a.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = a.Verify(ctx, first.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Verify(ctx, second.AccessToken)
	assert.NoError(t, err)
}

func TestAuth_RefreshWithoutSession(t *testing.T) {
	a, _, _ := newTestAuth(t)
	ctx := context.Background()

	tok, err := a.CreateRefreshToken("admin", "admin", a.now())
	require.NoError(t, err)

	_, err = a.Refresh(ctx, tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_TokenTypesAreNotInterchangeable(t *testing.T) {
	a, _, _ := newTestAuth(t)
	ctx := context.Background()

	pair, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	_, err = a.Verify(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_LoginSupersedesPreviousSession(t *testing.T) {
	a, _, _ := newTestAuth(t)
	ctx := context.Background()

	first, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	second, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	_, err = a.Verify(ctx, first.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = a.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = a.Verify(ctx, second.AccessToken)
	assert.NoError(t, err)
}

func TestAuth_Expiry(t *testing.T) {
	a, _, clock := newTestAuth(t)
	ctx := context.Background()

	pair, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	clock.t = clock.t.Add(16 * time.Minute)
	_, err = a.Verify(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	next, err := a.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	_, err = a.Verify(ctx, next.AccessToken)
	require.NoError(t, err)

	clock.t = clock.t.Add(25 * time.Hour)
	_, err = a.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_FailedRefreshKeepsSession(t *testing.T) {
	a, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	pair, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	before, err := sessions.GetSession(ctx)
	require.NoError(t, err)

	_, err = a.Refresh(ctx, pair.RefreshToken+"x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	after, err := sessions.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, *before.RefreshToken, *after.RefreshToken)
	assert.Equal(t, *before.AccessToken, *after.AccessToken)
}

func TestAuth_Logout(t *testing.T) {
	a, sessions, _ := newTestAuth(t)
	ctx := context.Background()

	pair, err := a.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx, pair.AccessToken))

	sess, err := sessions.GetSession(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Active())
	assert.Nil(t, sess.IssuedAt)

	_, err = a.Verify(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, a.Logout(ctx, pair.AccessToken), ErrUnauthorized)
	_, err = a.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
