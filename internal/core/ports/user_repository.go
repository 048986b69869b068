package ports

import (
	"context"

	"github.com/userhub/user-directory/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
// Username uniqueness is enforced by the store itself (unique index); callers
// treat any existence check before Insert as a pre-check only.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces username, password hash, email and roles on the record
	// with the given id and returns the post-update document.
	Update(ctx context.Context, id string, user *domain.User) (*domain.User, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (*domain.User, error)
	// Delete removes the record and returns it, or (nil, nil) when no record
	// matched the id.
	Delete(ctx context.Context, id string) (*domain.User, error)
	// ListByCreatedDesc returns all records ordered by creation time, newest first.
	ListByCreatedDesc(ctx context.Context) ([]*domain.User, error)
}
