package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// modifyUserRequest drives the upsert: an empty id inserts, a non-empty id
// updates the listed fields on that record.
type modifyUserRequest struct {
	ID       string   `json:"id"`
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Email    string   `json:"email"    validate:"omitempty,email"`
	Roles    []string `json:"roles"`
}

type enabledUserRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer; the JSON contract is decoupled from domain types.

type tokenResponse struct {
	Token string `json:"token"`
}

// userResponse is the gated projection of a user record. Password and
// createdDate are resolved through the field policy, never copied raw.
type userResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	Password    string   `json:"password"`
	Roles       []string `json:"roles"`
	Enabled     bool     `json:"enabled"`
	Avatar      string   `json:"avatar,omitempty"`
	CreatedDate string   `json:"createdDate"`
}
