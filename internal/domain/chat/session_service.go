package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"voxchat-server/internal/utils/platformerrors"
)

// SessionService manages the session registry and the operations that span
// both the registry and the history store.
type SessionService interface {
	List(ctx context.Context) ([]Session, error)
	History(ctx context.Context, sessionID string) ([]Turn, error)
	// CreateGeneratedName names a session from its history. A session that
	// already has a name is left untouched and the call fails with a conflict.
	CreateGeneratedName(ctx context.Context, sessionID, model string) (string, error)
	// Rename sets an explicit display name, creating the registry entry when
	// the session was never named.
	Rename(ctx context.Context, sessionID, name string) error
	// Delete removes a session's registry entry and its whole history.
	Delete(ctx context.Context, sessionID string) error
	// UnnamedSessionIDs returns session ids that have history but no registry
	// entry yet.
	UnnamedSessionIDs(ctx context.Context) ([]string, error)
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	registry SessionRepository
	history  HistoryRepository
	naming   NamingService
	logger   zerolog.Logger
}

// NewSessionService creates a session registry service.
func NewSessionService(registry SessionRepository, history HistoryRepository, naming NamingService, logger zerolog.Logger) *DefaultSessionService {
	return &DefaultSessionService{
		registry: registry,
		history:  history,
		naming:   naming,
		logger:   logger.With().Str("component", "session_service").Logger(),
	}
}

func (s *DefaultSessionService) List(ctx context.Context) ([]Session, error) {
	sessions, err := s.registry.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list sessions")
	}
	return sessions, nil
}

func (s *DefaultSessionService) History(ctx context.Context, sessionID string) ([]Turn, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil, "history-empty-session")
	}
	turns, err := s.history.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load session history")
	}
	return turns, nil
}

func (s *DefaultSessionService) CreateGeneratedName(ctx context.Context, sessionID, model string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil, "name-empty-session")
	}

	// Checked before generating so an already-named session never costs a
	// model call. The unique index on session_id backs this up under races.
	if _, err := s.registry.FindBySessionID(ctx, sessionID); err == nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict, "session is already named", nil, "name-duplicate-session")
	} else if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check session registry")
	}

	name, err := s.naming.GenerateName(ctx, sessionID, model)
	if err != nil {
		return "", err
	}

	session := NewSession(sessionID, name, map[string]string{"named_by": "generated"})
	if err := s.registry.Create(ctx, session); err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store session name")
	}

	s.logger.Info().Str("session_id", sessionID).Str("display_name", name).Msg("session named")
	return name, nil
}

func (s *DefaultSessionService) Rename(ctx context.Context, sessionID, name string) error {
	if strings.TrimSpace(sessionID) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil, "rename-empty-session")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "name is required", nil, "rename-empty-name")
	}

	session := NewSession(sessionID, name, map[string]string{"named_by": "user"})
	if err := s.registry.Upsert(ctx, session); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to rename session")
	}
	return nil
}

func (s *DefaultSessionService) Delete(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil, "delete-empty-session")
	}

	removed, err := s.history.DeleteBySession(ctx, sessionID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete session history")
	}
	if err := s.registry.Delete(ctx, sessionID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete session")
	}

	s.logger.Info().Str("session_id", sessionID).Int64("turns_removed", removed).Msg("session deleted")
	return nil
}

func (s *DefaultSessionService) UnnamedSessionIDs(ctx context.Context) ([]string, error) {
	ids, err := s.history.ListSessionIDs(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list session ids")
	}
	sessions, err := s.registry.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list sessions")
	}

	named := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		named[session.SessionID] = struct{}{}
	}

	unnamed := make([]string, 0)
	for _, id := range ids {
		if _, ok := named[id]; !ok {
			unnamed = append(unnamed, id)
		}
	}
	return unnamed, nil
}
