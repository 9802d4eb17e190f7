package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/utils/platformerrors"
	"voxchat-server/internal/utils/textutils"
)

const namingSystemPrompt = "You name chat sessions. Summarize the questions the user asked " +
	"into a short title of at most five words. Ignore greetings and small talk. " +
	"Answer with the title only, without quotes or punctuation around it."

// NamingService derives a display name from a session's history. It is
// read-only; persisting the generated name is the caller's job.
type NamingService interface {
	GenerateName(ctx context.Context, sessionID, model string) (string, error)
}

// DefaultNamingService implements NamingService with a chat completion call
// over the user side of the session history.
type DefaultNamingService struct {
	history      HistoryRepository
	provider     llm.CompletionProvider
	defaultModel string
	logger       zerolog.Logger
}

// NewNamingService creates a naming service. defaultModel is used when a call
// does not name one.
func NewNamingService(history HistoryRepository, provider llm.CompletionProvider, defaultModel string, logger zerolog.Logger) *DefaultNamingService {
	return &DefaultNamingService{
		history:      history,
		provider:     provider,
		defaultModel: defaultModel,
		logger:       logger.With().Str("component", "naming_service").Logger(),
	}
}

// GenerateName summarizes the user questions of a session into a short title.
// Assistant turns are left out of the prompt so the name reflects what the
// user asked, not how the model answered.
func (s *DefaultNamingService) GenerateName(ctx context.Context, sessionID, model string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session id is required", nil, "name-empty-session")
	}
	if model == "" {
		model = s.defaultModel
	}

	questions, err := s.history.ListUserContent(ctx, sessionID)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load session history")
	}
	if len(questions) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "session has no user messages to summarize", nil, "name-empty-history")
	}

	var prompt strings.Builder
	prompt.WriteString("Below are the questions asked by the user.\n------------\n")
	for _, question := range questions {
		prompt.WriteString(question)
		prompt.WriteString("\n")
	}
	prompt.WriteString("------------\nNow summarize these chats within 5 words.")

	raw, err := s.provider.Complete(ctx, model, []llm.Message{
		{Role: llm.RoleSystem, Content: namingSystemPrompt},
		{Role: llm.RoleUser, Content: prompt.String()},
	})
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeExternal, "model backend unavailable", err, "name-model-unavailable")
	}

	name := strings.Trim(strings.TrimSpace(textutils.StripReasoning(raw)), `"'`)
	if name == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeExternal, "model returned an empty name", nil, "name-empty-reply")
	}

	s.logger.Debug().Str("session_id", sessionID).Str("display_name", name).Msg("session name generated")
	return name, nil
}
