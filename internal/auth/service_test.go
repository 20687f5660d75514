package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-studio/backend/internal/auth"
	"github.com/atelier-studio/backend/internal/config"
)

func testConfig(mode config.AuthMode) *config.Config {
	return &config.Config{
		AuthMode:      mode,
		AdminPassword: "s3cret",
		AdminID:       "admin",
		JWTSecret:     "single-secret",
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		TokenTTL:      2 * time.Hour,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeSingle))

	if _, err := svc.Login("nope"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnsetPassword(t *testing.T) {
	t.Parallel()
	cfg := testConfig(config.AuthModeSingle)
	cfg.AdminPassword = ""
	svc := auth.NewService(cfg)

	if _, err := svc.Login(""); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("an unset admin password must never authenticate, got %v", err)
	}
}

func TestSingleModeLoginAndVerify(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeSingle))

	pair, err := svc.Login("s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.Refresh != "" {
		t.Fatal("single mode must not issue a refresh token")
	}

	adminID, err := svc.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if adminID != "admin" {
		t.Fatalf("adminID = %q, want admin", adminID)
	}
}

func TestRefreshModeLoginAndRefresh(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeRefresh))

	pair, err := svc.Login("s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.Refresh == "" {
		t.Fatal("refresh mode must issue a refresh token")
	}
	if _, err := svc.VerifyAccess(pair.Access); err != nil {
		t.Fatalf("fresh access token should verify: %v", err)
	}

	access, err := svc.Refresh(pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := svc.VerifyAccess(access); err != nil {
		t.Fatalf("refreshed access token should verify: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeRefresh))

	pair, err := svc.Login("s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	// an access token is signed with a different secret than refresh tokens
	if _, err := svc.Refresh(pair.Access); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestRefreshUnsupportedInSingleMode(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeSingle))

	if _, err := svc.Refresh("anything"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeRefresh))

	token := signed(t, "some-other-secret", jwt.MapClaims{
		"sub": "admin", "isAdmin": true, "exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.VerifyAccess(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeRefresh))

	token := signed(t, "access-secret", jwt.MapClaims{
		"sub": "admin", "isAdmin": true, "exp": time.Now().Add(-time.Minute).Unix(),
	})
	if _, err := svc.VerifyAccess(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMissingAdminClaim(t *testing.T) {
	t.Parallel()
	svc := auth.NewService(testConfig(config.AuthModeRefresh))

	token := signed(t, "access-secret", jwt.MapClaims{
		"sub": "someone", "exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := svc.VerifyAccess(token); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}
