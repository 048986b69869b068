package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/core/policy"
	"github.com/userhub/user-directory/internal/core/ports"
)

type stubUserService struct {
	signInFn      func(ctx context.Context, username, password string) (string, error)
	signUpFn      func(ctx context.Context, username, email, password string) (*domain.User, error)
	listFn        func(ctx context.Context) ([]*domain.User, error)
	currentFn     func(ctx context.Context, identity *domain.Identity) (*domain.User, error)
	upsertFn      func(ctx context.Context, identity *domain.Identity, input ports.UpsertUserInput) (*domain.User, error)
	setEnabledFn  func(ctx context.Context, identity *domain.Identity, id string, enabled bool) (*domain.User, error)
	deleteFn      func(ctx context.Context, identity *domain.Identity, id string) (*domain.User, error)
}

func (s *stubUserService) SignIn(ctx context.Context, username, password string) (string, error) {
	return s.signInFn(ctx, username, password)
}

func (s *stubUserService) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.signUpFn(ctx, username, email, password)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	return s.currentFn(ctx, identity)
}

func (s *stubUserService) UpsertUser(ctx context.Context, identity *domain.Identity, input ports.UpsertUserInput) (*domain.User, error) {
	return s.upsertFn(ctx, identity, input)
}

func (s *stubUserService) SetUserEnabled(ctx context.Context, identity *domain.Identity, id string, enabled bool) (*domain.User, error) {
	return s.setEnabledFn(ctx, identity, id, enabled)
}

func (s *stubUserService) DeleteUser(ctx context.Context, identity *domain.Identity, id string) (*domain.User, error) {
	return s.deleteFn(ctx, identity, id)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_SignIn_Success(t *testing.T) {
	stub := &stubUserService{
		signInFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signin", `{"username":"alice","password":"secret1"}`)
	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestUserHandler_SignIn_BadCredentials(t *testing.T) {
	stub := &stubUserService{
		signInFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signin", `{"username":"alice","password":"bad"}`)
	err := h.SignIn(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestUserHandler_SignIn_MissingFields(t *testing.T) {
	stub := &stubUserService{
		signInFn: func(ctx context.Context, username, password string) (string, error) {
			t.Fatalf("service should not be called")
			return "", nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signin", `{"username":"alice"}`)
	err := h.SignIn(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_SignUp_Created(t *testing.T) {
	created := &domain.User{
		ID:        "id-1",
		Username:  "alice",
		Email:     "alice@example.com",
		Roles:     []string{},
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	stub := &stubUserService{
		signUpFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			return created, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"pw"}`)
	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	// Anonymous requester: the password field must come back redacted.
	if resp["password"] != policy.Redacted {
		t.Fatalf("expected redacted password, got %v", resp["password"])
	}
}

func TestUserHandler_SignUp_Duplicate(t *testing.T) {
	stub := &stubUserService{
		signUpFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			return nil, &domain.DuplicateUserError{Username: username}
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"username":"bob","email":"b@example.com","password":"pw"}`)
	err := h.SignUp(c)

	var dup *domain.DuplicateUserError
	if !errors.As(err, &dup) || dup.Username != "bob" {
		t.Fatalf("expected duplicate error for bob, got %v", err)
	}
}

func TestUserHandler_GetCurrentUser_Anonymous(t *testing.T) {
	stub := &stubUserService{
		currentFn: func(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
			if identity != nil {
				t.Fatalf("expected anonymous identity")
			}
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/me", "")
	if err := h.GetCurrentUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected JSON null, got %q", rec.Body.String())
	}
}

func TestUserHandler_ModifyUser_PassesInput(t *testing.T) {
	stub := &stubUserService{
		upsertFn: func(ctx context.Context, identity *domain.Identity, input ports.UpsertUserInput) (*domain.User, error) {
			if input.ID != "id-9" || input.Username != "carol" || len(input.Roles) != 1 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: input.ID, Username: input.Username, Roles: input.Roles}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/users",
		`{"id":"id-9","username":"carol","password":"pw","roles":["manager"]}`)
	if err := h.ModifyUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_EnabledUser_RequiresFlag(t *testing.T) {
	stub := &stubUserService{
		setEnabledFn: func(ctx context.Context, identity *domain.Identity, id string, enabled bool) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/users/id-1/enabled", `{}`)
	err := h.EnabledUser(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_EnabledUser_Disable(t *testing.T) {
	stub := &stubUserService{
		setEnabledFn: func(ctx context.Context, identity *domain.Identity, id string, enabled bool) (*domain.User, error) {
			if id != "id-1" || enabled {
				t.Fatalf("unexpected args: %s %v", id, enabled)
			}
			return &domain.User{ID: id, Username: "dora", Enabled: enabled}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/users/:id/enabled", `{"enabled":false}`)
	c.SetParamNames("id")
	c.SetParamValues("id-1")

	if err := h.EnabledUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_DeleteUser_Missing(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, identity *domain.Identity, id string) (*domain.User, error) {
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/users/:id", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("delete of missing id must not error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected JSON null, got %q", rec.Body.String())
	}
}
