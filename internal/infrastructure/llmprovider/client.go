// Package llmprovider talks to an OpenAI-compatible model backend for chat
// completions and audio transcription.
package llmprovider

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"voxchat-server/internal/config"
	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/infrastructure/metrics"
	"voxchat-server/internal/utils/platformerrors"
)

// Client wraps a single go-openai client for the process lifetime so HTTP
// connections are pooled across requests.
type Client struct {
	api                *openai.Client
	transcribeModel    string
	transcribeLanguage string
	logger             zerolog.Logger
}

var (
	_ llm.CompletionProvider = (*Client)(nil)
	_ llm.Transcriber        = (*Client)(nil)
)

// NewClient creates the backend client from configuration.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	apiConfig := openai.DefaultConfig(cfg.LLMAPIKey)
	apiConfig.BaseURL = strings.TrimSuffix(cfg.LLMBaseURL, "/")
	apiConfig.HTTPClient = &http.Client{Timeout: cfg.LLMTimeout}

	return &Client{
		api:                openai.NewClientWithConfig(apiConfig),
		transcribeModel:    cfg.TranscribeModel,
		transcribeLanguage: cfg.TranscribeLanguage,
		logger:             logger.With().Str("component", "llm_client").Logger(),
	}
}

// Complete runs a chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, message := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	start := time.Now()
	response, err := c.api.CreateChatCompletion(ctx, request)
	metrics.ModelCallDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ModelCallsTotal.WithLabelValues(model, "error").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "chat completion failed", err, "llm-completion")
	}
	if len(response.Choices) == 0 {
		metrics.ModelCallsTotal.WithLabelValues(model, "error").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "chat completion returned no choices", nil, "llm-no-choices")
	}

	metrics.ModelCallsTotal.WithLabelValues(model, "ok").Inc()
	c.logger.Debug().
		Str("model", model).
		Int("prompt_messages", len(messages)).
		Dur("duration", time.Since(start)).
		Msg("chat completion finished")

	return response.Choices[0].Message.Content, nil
}

// Transcribe converts recorded audio to text. Audio without recognizable
// speech fails with a validation error rather than returning an empty string.
func (c *Client) Transcribe(ctx context.Context, fileName string, data []byte) (string, error) {
	request := openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: fileName,
		Reader:   bytes.NewReader(data),
		Language: c.transcribeLanguage,
	}

	response, err := c.api.CreateTranscription(ctx, request)
	if err != nil {
		metrics.TranscriptionsTotal.WithLabelValues("error").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "transcription failed", err, "stt-failed")
	}

	text := strings.TrimSpace(response.Text)
	if text == "" {
		metrics.TranscriptionsTotal.WithLabelValues("empty").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation, "no speech detected in audio", nil, "stt-empty")
	}

	metrics.TranscriptionsTotal.WithLabelValues("ok").Inc()
	return text, nil
}
