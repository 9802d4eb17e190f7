package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/utils/platformerrors"
	"voxchat-server/internal/utils/textutils"
)

// DefaultSystemPrompt primes the model when the deployment does not override it.
const DefaultSystemPrompt = "You are a helpful assistant. Keep your answers short and conversational."

// ConverseParams carries one user exchange. Model and SystemPrompt are
// optional; empty values fall back to the service defaults.
type ConverseParams struct {
	SessionID    string
	Model        string
	SystemPrompt string
	Question     string
}

// Service runs session-scoped conversations.
type Service interface {
	Converse(ctx context.Context, params ConverseParams) (string, error)
}

// DefaultService implements Service on top of the history store and a chat
// completion backend.
type DefaultService struct {
	history      HistoryRepository
	provider     llm.CompletionProvider
	locks        *sessionLocks
	defaultModel string
	systemPrompt string
	logger       zerolog.Logger
}

// NewService creates a conversation service.
func NewService(history HistoryRepository, provider llm.CompletionProvider, defaultModel, systemPrompt string, logger zerolog.Logger) *DefaultService {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &DefaultService{
		history:      history,
		provider:     provider,
		locks:        newSessionLocks(),
		defaultModel: defaultModel,
		systemPrompt: systemPrompt,
		logger:       logger.With().Str("component", "chat_service").Logger(),
	}
}

// Converse loads the session history, runs a completion with the full context
// and records both sides of the exchange. The read-complete-append cycle holds
// the session's lock so interleaved calls cannot corrupt turn ordering.
func (s *DefaultService) Converse(ctx context.Context, params ConverseParams) (string, error) {
	sessionID := strings.TrimSpace(params.SessionID)
	if sessionID == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil, "converse-empty-session")
	}
	question := strings.TrimSpace(params.Question)
	if question == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "question is required", nil, "converse-empty-question")
	}

	model := params.Model
	if model == "" {
		model = s.defaultModel
	}
	systemPrompt := params.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = s.systemPrompt
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	turns, err := s.history.ListBySession(ctx, sessionID)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load session history")
	}

	messages := make([]llm.Message, 0, len(turns)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	raw, err := s.provider.Complete(ctx, model, messages)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeExternal, "model backend unavailable", err, "converse-model-unavailable")
	}

	// Reasoning blocks are stripped before the reply is stored, so history
	// replayed into later prompts never carries chain-of-thought.
	reply := textutils.StripReasoning(raw)
	if reply == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeExternal, "model returned an empty reply", nil, "converse-empty-reply")
	}

	sequence := len(turns)
	exchange := []*Turn{
		NewTurn(sessionID, RoleUser, question, sequence),
		NewTurn(sessionID, RoleAssistant, reply, sequence+1),
	}
	if err := s.history.BulkAppend(ctx, exchange); err != nil {
		// The reply is not surfaced when it cannot be recorded, otherwise the
		// next exchange would run against a history missing this turn.
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record exchange")
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("model", model).
		Int("history_turns", len(turns)).
		Msg("exchange recorded")

	return reply, nil
}
