package ports

import (
	"context"

	"github.com/userhub/user-directory/internal/core/domain"
)

// AuditRecorder persists user lifecycle events.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.UserEvent) error
}

// EventSink receives lifecycle events for asynchronous recording. The
// dispatcher implements it; a no-op sink is acceptable in tests.
type EventSink interface {
	Enqueue(event domain.UserEvent)
}

// TokenRevoker invalidates outstanding tokens for a user. Optional: when no
// revoker is configured, tokens stay valid until natural expiry.
type TokenRevoker interface {
	Deny(ctx context.Context, userID string) error
}
