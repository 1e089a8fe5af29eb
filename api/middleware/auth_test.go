package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftloop/craftloop-backend/pkg/auth"
	"github.com/craftloop/craftloop-backend/pkg/config"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type stubChecker struct {
	alive map[string]bool
}

func (s *stubChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	return s.alive[accessID], nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "craftloop-test",
		ExpirationMinutes: 30,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func mintToken(t *testing.T, jti string) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWTConfig(), time.Now(), auth.AccessTokenPayload{
		UserID: 7,
		Email:  "maker@example.com",
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return token
}

func TestRequireAuthPassesClaims(t *testing.T) {
	checker := &stubChecker{alive: map[string]bool{"jti-1": true}}
	authn := NewAuthenticator(testJWTConfig(), checker, testLogger())

	var gotUserID uint
	handler := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := UserIDFromContext(r.Context())
		if err != nil {
			t.Fatalf("claims missing: %v", err)
		}
		gotUserID = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "jti-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != 7 {
		t.Fatalf("expected user 7, got %d", gotUserID)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	authn := NewAuthenticator(testJWTConfig(), &stubChecker{alive: map[string]bool{}}, testLogger())
	handler := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthRevokedSession(t *testing.T) {
	authn := NewAuthenticator(testJWTConfig(), &stubChecker{alive: map[string]bool{}}, testLogger())
	handler := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "jti-revoked"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	authn := NewAuthenticator(testJWTConfig(), &stubChecker{alive: map[string]bool{}}, testLogger())
	handler := authn.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
