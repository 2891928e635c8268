package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/inventory_cart/internal/models"
	"github.com/Skotchmaster/inventory_cart/pkg/hash"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
	"github.com/Skotchmaster/inventory_cart/pkg/tokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const adminRole = "admin"

type SessionStore interface {
	GetSession(ctx context.Context) (models.Session, error)
	UpdateSession(ctx context.Context, fn func(cur models.Session) (models.Session, error)) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService keeps exactly one live access/refresh pair. A token is
// accepted only while it is both validly signed and equal to the stored
// one, which is how a later login or refresh revokes earlier tokens.
type AuthService struct {
	Sessions      SessionStore
	Username      string
	PasswordHash  string
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth")

	if username == "" || password == "" {
		l.Info("login_rejected", "reason", "missing_credentials")
		return nil, ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := hash.CheckPassword(s.PasswordHash, password)
	if !userOK || !passOK {
		l.Info("login_rejected", "reason", "bad_credentials")
		return nil, ErrUnauthorized
	}

	var pair *TokenPair
	err := s.Sessions.UpdateSession(ctx, func(models.Session) (models.Session, error) {
		p, sess, err := s.issue(username, adminRole)
		if err != nil {
			return models.Session{}, err
		}
		pair = p
		return sess, nil
	})
	if err != nil {
		l.Error("login_failed", "error", err)
		return nil, err
	}

	l.Info("login_succeeded", "username", username)
	return pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth")

	var pair *TokenPair
	err := s.Sessions.UpdateSession(ctx, func(cur models.Session) (models.Session, error) {
		if !cur.Active() {
			return cur, fmt.Errorf("%w: no session", ErrUnauthorized)
		}
		claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret, jwt.WithTimeFunc(s.now))
		if err != nil {
			return cur, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		if !sameToken(*cur.RefreshToken, refreshToken) {
			return cur, fmt.Errorf("%w: refresh token superseded", ErrUnauthorized)
		}

		p, sess, err := s.issue(claims.Username, claims.Role)
		if err != nil {
			return cur, err
		}
		pair = p
		return sess, nil
	})
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			l.Info("refresh_rejected", "reason", err.Error())
			return nil, ErrUnauthorized
		}
		l.Error("refresh_failed", "error", err)
		return nil, err
	}

	l.Info("refresh_succeeded")
	return pair, nil
}

func (s *AuthService) Verify(ctx context.Context, accessToken string) (*tokens.AccessClaims, error) {
	l := logging.FromContext(ctx).With("svc", "auth")

	claims, err := tokens.AccessClaimsFromToken(accessToken, s.AccessSecret, jwt.WithTimeFunc(s.now))
	if err != nil {
		l.Debug("verify_rejected", "reason", err.Error())
		return nil, ErrUnauthorized
	}

	cur, err := s.Sessions.GetSession(ctx)
	if err != nil {
		l.Error("verify_failed", "error", err)
		return nil, err
	}
	if !cur.Active() || !sameToken(*cur.AccessToken, accessToken) {
		l.Debug("verify_rejected", "reason", "access token superseded")
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// Logout clears the session if accessToken is the live one.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth")

	err := s.Sessions.UpdateSession(ctx, func(cur models.Session) (models.Session, error) {
		if _, err := tokens.AccessClaimsFromToken(accessToken, s.AccessSecret, jwt.WithTimeFunc(s.now)); err != nil {
			return cur, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		if !cur.Active() || !sameToken(*cur.AccessToken, accessToken) {
			return cur, fmt.Errorf("%w: access token superseded", ErrUnauthorized)
		}
		return models.Session{}, nil
	})
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			l.Info("logout_rejected", "reason", err.Error())
			return ErrUnauthorized
		}
		l.Error("logout_failed", "error", err)
		return err
	}

	l.Info("logout_succeeded")
	return nil
}

// issue signs a new pair and returns the session record that makes it live.
func (s *AuthService) issue(username, role string) (*TokenPair, models.Session, error) {
	now := s.now()

	access, err := s.CreateAccessToken(username, role, now)
	if err != nil {
		return nil, models.Session{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.CreateRefreshToken(username, role, now)
	if err != nil {
		return nil, models.Session{}, fmt.Errorf("sign refresh token: %w", err)
	}

	issuedAt := now.UTC()
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, models.Session{
		AccessToken:  &access,
		RefreshToken: &refresh,
		IssuedAt:     &issuedAt,
	}, nil
}

func (s *AuthService) CreateAccessToken(username, role string, now time.Time) (string, error) {
	return tokens.Sign(tokens.AccessClaims{
		Username:         username,
		Role:             role,
		Type:             tokens.TypeAccess,
		RegisteredClaims: registered(username, now, s.AccessTTL),
	}, s.AccessSecret)
}

func (s *AuthService) CreateRefreshToken(username, role string, now time.Time) (string, error) {
	return tokens.Sign(tokens.RefreshClaims{
		Username:         username,
		Role:             role,
		Type:             tokens.TypeRefresh,
		RegisteredClaims: registered(username, now, s.RefreshTTL),
	}, s.RefreshSecret)
}

func registered(subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sameToken(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
