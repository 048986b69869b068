package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/infrastructure/token"
)

func signedToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	issuer, err := token.NewJWTIssuer(secret, ttl)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	signed, err := issuer.Issue(&domain.User{ID: "abc", Username: "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return signed
}

func testIssuer(t *testing.T) *token.JWTIssuer {
	t.Helper()
	issuer, err := token.NewJWTIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return issuer
}

func TestIdentity_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "secret", time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Identity(testIssuer(t), nil)(func(c echo.Context) error {
		called = true
		identity := IdentityFrom(c)
		if identity == nil || identity.Username != "alice" || identity.UserID != "abc" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestIdentity_NoHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(testIssuer(t), nil)(func(c echo.Context) error {
		if IdentityFrom(c) != nil {
			t.Fatalf("expected anonymous identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentity_WrongSecret(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(testIssuer(t), nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestIdentity_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Identity(testIssuer(t), nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

type stubDenylist struct {
	denied map[string]bool
}

func (d *stubDenylist) IsDenied(_ context.Context, userID string) (bool, error) {
	return d.denied[userID], nil
}

func TestIdentity_DeniedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "secret", time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	denylist := &stubDenylist{denied: map[string]bool{"abc": true}}
	handler := Identity(testIssuer(t), denylist)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
