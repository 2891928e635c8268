package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("test-access-secret")
	refreshSecret = []byte("test-refresh-secret")
)

func accessClaims(exp time.Time) AccessClaims {
	return AccessClaims{
		Username: "admin",
		Role:     "admin",
		Type:     TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestAccessClaimsFromToken_Valid(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute)
	token, err := Sign(accessClaims(exp), accessSecret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "jti-1", claims.ID)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Sign(accessClaims(time.Now().Add(time.Minute)), accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, refreshSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := Sign(accessClaims(time.Now().Add(-time.Minute)), accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, accessSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestAccessClaimsFromToken_TimeFunc(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, err := Sign(accessClaims(now.Add(time.Minute)), accessSecret)
	require.NoError(t, err)

	later := func() time.Time { return now.Add(2 * time.Minute) }
	_, err = AccessClaimsFromToken(token, accessSecret, jwt.WithTimeFunc(later))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestAccessClaimsFromToken_RejectsRefreshToken(t *testing.T) {
	t.Parallel()

	claims := RefreshClaims{
		Username: "admin",
		Type:     TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := Sign(claims, accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, accessSecret)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestAccessClaimsFromToken_RejectsOtherAlg(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, accessClaims(time.Now().Add(time.Minute)))
	token, err := tok.SignedString(accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, accessSecret)
	require.Error(t, err)
}

func TestAccessClaimsFromToken_RequiresExpiry(t *testing.T) {
	t.Parallel()

	claims := accessClaims(time.Now())
	claims.ExpiresAt = nil
	token, err := Sign(claims, accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, accessSecret)
	require.Error(t, err)
}

func TestRefreshClaimsFromToken(t *testing.T) {
	t.Parallel()

	claims := RefreshClaims{
		Username: "admin",
		Role:     "admin",
		Type:     TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-2",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token, err := Sign(claims, refreshSecret)
	require.NoError(t, err)

	got, err := RefreshClaimsFromToken(token, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "jti-2", got.ID)

	_, err = RefreshClaimsFromToken(token, accessSecret)
	require.Error(t, err)

	_, err = RefreshClaimsFromToken("not-a-jwt", refreshSecret)
	require.Error(t, err)
}
