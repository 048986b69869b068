package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/user-directory/internal/core/domain"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
		{&domain.DuplicateUserError{Username: "bob"}, http.StatusConflict, "this user 'bob' already exists"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "unauthenticated"},
		{domain.ErrTokenInvalid, http.StatusUnauthorized, "unauthenticated"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		code, msg := resolveError(tc.err, zerolog.Nop(), testContext())
		if code != tc.code || msg != tc.message {
			t.Fatalf("%v: got (%d, %q), want (%d, %q)", tc.err, code, msg, tc.code, tc.message)
		}
	}
}

func TestResolveError_WrappedDuplicate(t *testing.T) {
	err := fmt.Errorf("signup: %w", &domain.DuplicateUserError{Username: "eve"})
	code, msg := resolveError(err, zerolog.Nop(), testContext())
	if code != http.StatusConflict || msg != "this user 'eve' already exists" {
		t.Fatalf("got (%d, %q)", code, msg)
	}
}
