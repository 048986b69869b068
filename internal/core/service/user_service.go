package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/user-directory/internal/core/domain"
	"github.com/userhub/user-directory/internal/core/ports"
)

// UserService orchestrates the credential store, password hasher and token
// issuer. It is stateless across calls; the store is the only persisted state.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	events ports.EventSink
	logger zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	events ports.EventSink,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		events: events,
		logger: logger,
	}
}

// SignIn authenticates the pair and returns a signed bearer token. Unknown
// username and wrong password fail with the exact same error.
//
// Enabled is deliberately not checked here: a disabled user can still sign in
// and an already-issued token stays valid until expiry. Revocation, when
// wanted, is layered on through the denylist.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("user signed in")
	return signed, nil
}

// SignUp creates a record with an empty role set and enablement on. The
// existence check is a pre-check only; under a race the unique index on
// username is what actually prevents duplicates.
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	if existing, err := s.repo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, &domain.DuplicateUserError{Username: username}
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{},
		Enabled:      true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.emit(created, domain.EventSignedUp, nil)
	s.logger.Info().Str("username", username).Str("id", created.ID).Msg("user signed up")
	return created, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByCreatedDesc(ctx)
}

func (s *UserService) CurrentUser(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, nil
	}
	user, err := s.repo.FindByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpsertUser inserts when input.ID is empty, otherwise updates the four
// editable fields on the existing record and returns the post-update state.
// The password is hashed on both branches.
func (s *UserService) UpsertUser(ctx context.Context, identity *domain.Identity, input ports.UpsertUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	roles := input.Roles
	if roles == nil {
		roles = []string{}
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Roles:        roles,
	}

	if input.ID == "" {
		user.Enabled = true
		user.CreatedAt = time.Now().UTC()
		created, err := s.repo.Insert(ctx, user)
		if err != nil {
			return nil, err
		}
		s.emit(created, domain.EventSignedUp, identity)
		s.logger.Info().Str("username", created.Username).Str("id", created.ID).Msg("user created")
		return created, nil
	}

	updated, err := s.repo.Update(ctx, input.ID, user)
	if err != nil {
		return nil, err
	}
	s.emit(updated, domain.EventModified, identity)
	s.logger.Info().Str("username", updated.Username).Str("id", updated.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) SetUserEnabled(ctx context.Context, identity *domain.Identity, id string, enabled bool) (*domain.User, error) {
	updated, err := s.repo.SetEnabled(ctx, id, enabled)
	if err != nil {
		return nil, err
	}

	action := domain.EventEnabled
	if !enabled {
		action = domain.EventDisabled
	}
	s.emit(updated, action, identity)
	s.logger.Info().Str("id", id).Bool("enabled", enabled).Msg("user enablement changed")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, identity *domain.Identity, id string) (*domain.User, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return nil, nil
	}

	s.emit(removed, domain.EventDeleted, identity)
	s.logger.Info().Str("id", id).Str("username", removed.Username).Msg("user deleted")
	return removed, nil
}

// emit hands a lifecycle event to the async sink. Recording is best-effort
// and never fails the originating operation.
func (s *UserService) emit(user *domain.User, action domain.UserEventAction, identity *domain.Identity) {
	if s.events == nil {
		return
	}
	actor := ""
	if identity != nil {
		actor = identity.Username
	}
	s.events.Enqueue(domain.UserEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    action,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}
