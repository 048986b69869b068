package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleDirector = "director"
	RoleManager  = "manager"
)

// User models a directory record. PasswordHash is never serialized as-is;
// the field gate decides what crosses the output boundary.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Enabled      bool      `json:"enabled"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the per-request caller context derived from a verified token.
// A nil *Identity means the request is anonymous.
type Identity struct {
	UserID   string
	Username string
}

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password so that failures do not reveal which half was incorrect.
var ErrInvalidCredentials = errors.New("Incorrect username or password")

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrMissingSecret = errors.New("signing secret is not configured")
)

// DuplicateUserError reports a signup conflict. The message carries the
// offending username.
type DuplicateUserError struct {
	Username string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("this user '%s' already exists", e.Username)
}

// Is lets errors.Is(err, ErrUserExists) match a DuplicateUserError.
func (e *DuplicateUserError) Is(target error) bool {
	return target == ErrUserExists
}
