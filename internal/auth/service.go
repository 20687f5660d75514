// Package auth implements the admin credential gate: a single configured
// secret exchanged for signed bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-studio/backend/internal/config"
)

// ErrInvalidCredentials is returned when the login password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a token fails signature or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrForbidden is returned when a token is valid but lacks the admin claim.
var ErrForbidden = errors.New("admin claim required")

// TokenPair holds the tokens issued by a successful login. Refresh is empty
// in single-token mode.
type TokenPair struct {
	Access  string
	Refresh string
}

// Service issues and verifies admin tokens. Two modes exist: single-token
// (one token, fixed expiry) and access/refresh (short-lived access token in
// the body, long-lived refresh token in an HttpOnly cookie).
type Service struct {
	cfg *config.Config
}

// NewService creates an auth Service from the injected configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// Login compares password against the configured admin secret and issues
// tokens according to the configured mode.
func (s *Service) Login(password string) (TokenPair, error) {
	if s.cfg.AdminPassword == "" || password != s.cfg.AdminPassword {
		return TokenPair{}, ErrInvalidCredentials
	}

	if s.cfg.AuthMode == config.AuthModeSingle {
		access, err := s.sign(s.cfg.JWTSecret, s.cfg.TokenTTL)
		if err != nil {
			return TokenPair{}, fmt.Errorf("issue token: %w", err)
		}
		return TokenPair{Access: access}, nil
	}

	access, err := s.sign(s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.sign(s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh verifies a refresh token and mints a fresh access token.
// Single-token mode has no refresh tokens, so any presented one is invalid.
func (s *Service) Refresh(refreshToken string) (string, error) {
	if s.cfg.AuthMode == config.AuthModeSingle {
		return "", ErrInvalidToken
	}
	if _, err := parseAdminClaims(refreshToken, s.cfg.RefreshSecret); err != nil {
		return "", err
	}
	access, err := s.sign(s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// VerifyAccess validates an access token and returns the admin identity.
func (s *Service) VerifyAccess(token string) (string, error) {
	claims, err := parseAdminClaims(token, s.AccessSecret())
	if err != nil {
		return "", err
	}
	if isAdmin, _ := claims["isAdmin"].(bool); !isAdmin {
		return "", ErrForbidden
	}
	adminID, _ := claims["sub"].(string)
	return adminID, nil
}

// AccessSecret returns the secret access tokens are signed with in the
// configured mode. Route middleware verifies against this.
func (s *Service) AccessSecret() string {
	if s.cfg.AuthMode == config.AuthModeSingle {
		return s.cfg.JWTSecret
	}
	return s.cfg.AccessSecret
}

// RefreshTTL returns the refresh-cookie lifetime.
func (s *Service) RefreshTTL() time.Duration {
	return s.cfg.RefreshTTL
}

// sign creates a signed admin JWT with the given lifetime.
func (s *Service) sign(secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     s.cfg.AdminID,
		"isAdmin": true,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseAdminClaims validates signature and expiry and returns the claims.
func parseAdminClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
