package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/core/ports"
)

type auditService struct {
	repo    ports.AuditRecorder
	revoker ports.TokenRevoker
	log     zerolog.Logger
}

// NewAuditService returns the recorder the dispatcher workers drain into.
// When a revoker is supplied, delete and disable events additionally place
// the user on the token denylist; revocation failures are logged, not fatal,
// since the event itself was recorded.
func NewAuditService(repo ports.AuditRecorder, revoker ports.TokenRevoker, log zerolog.Logger) ports.AuditRecorder {
	return &auditService{repo: repo, revoker: revoker, log: log}
}

func (s *auditService) Record(ctx context.Context, event domain.UserEvent) error {
	if err := s.repo.Record(ctx, event); err != nil {
		return err
	}

	if s.revoker != nil && (event.Action == domain.EventDeleted || event.Action == domain.EventDisabled) {
		if err := s.revoker.Deny(ctx, event.UserID); err != nil {
			s.log.Warn().Err(err).Str("user_id", event.UserID).Msg("token revocation failed")
		}
	}

	s.log.Debug().
		Str("user_id", event.UserID).
		Str("action", string(event.Action)).
		Msg("audit event recorded")
	return nil
}
