package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-directory/internal/api/metrics"
	"github.com/userhub/user-directory/internal/api/middleware"
	"github.com/userhub/user-directory/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// SignIn authenticates a username/password pair and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *UserHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.users.SignIn(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// SignUp creates a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "New account details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.SignUp(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.SignUpsTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user, middleware.IdentityFrom(c)))
}

// GetUsers lists all records, newest first. Listing is open to any caller;
// sensitive fields inside each record are still gated per requester.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  userResponse
// @Router       /users [get]
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users, middleware.IdentityFrom(c)))
}

// GetCurrentUser resolves the caller's own record. Anonymous callers and
// identities whose record has vanished get a JSON null, not an error.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Router       /users/me [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	user, err := h.users.CurrentUser(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, toUserResponse(user, identity))
}

// ModifyUser inserts or updates a record depending on whether the payload
// carries an id.
//
// @Summary      Upsert a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      modifyUserRequest  true  "User fields"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Router       /users [put]
func (h *UserHandler) ModifyUser(c echo.Context) error {
	var req modifyUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity := middleware.IdentityFrom(c)
	user, err := h.users.UpsertUser(c.Request().Context(), identity, ports.UpsertUserInput{
		ID:       req.ID,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, identity))
}

// EnabledUser flips the enablement flag on a record.
//
// @Summary      Enable or disable a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "User id"
// @Param        body  body      enabledUserRequest  true  "Flag"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/enabled [patch]
func (h *UserHandler) EnabledUser(c echo.Context) error {
	var req enabledUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity := middleware.IdentityFrom(c)
	user, err := h.users.SetUserEnabled(c.Request().Context(), identity, c.Param("id"), *req.Enabled)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, identity))
}

// DeleteUser removes a record by id and returns it. A miss returns JSON null,
// never an error.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  userResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	user, err := h.users.DeleteUser(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, toUserResponse(user, identity))
}
