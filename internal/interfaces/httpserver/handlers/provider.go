package handlers

import (
	"github.com/rs/zerolog"

	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/domain/speech"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat    *ChatHandler
	Session *SessionHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	chatService chat.Service,
	sessionService chat.SessionService,
	transcriber llm.Transcriber,
	synthesizer speech.Synthesizer,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Chat:    NewChatHandler(chatService, transcriber, synthesizer, log),
		Session: NewSessionHandler(sessionService, log),
	}
}
