package ports

import (
	"context"

	"github.com/userhub/user-directory/internal/core/domain"
)

// UpsertUserInput carries the fields of the modifyUser operation. An empty ID
// means insert; a non-empty ID means update-in-place of the listed fields.
type UpsertUserInput struct {
	ID       string
	Username string
	Password string
	Email    string
	Roles    []string
}

type UserService interface {
	// SignIn verifies the credentials and returns a signed bearer token.
	SignIn(ctx context.Context, username, password string) (string, error)
	SignUp(ctx context.Context, username, email, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// CurrentUser resolves the record behind the caller identity. A nil
	// identity or a vanished record yields (nil, nil), not an error.
	CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error)
	UpsertUser(ctx context.Context, identity *domain.Identity, input UpsertUserInput) (*domain.User, error)
	SetUserEnabled(ctx context.Context, identity *domain.Identity, id string, enabled bool) (*domain.User, error)
	// DeleteUser removes the record and returns it, or (nil, nil) when the id
	// matched nothing.
	DeleteUser(ctx context.Context, identity *domain.Identity, id string) (*domain.User, error)
}
