// Package speech streams synthesized audio from an OpenAI-compatible
// text-to-speech endpoint.
package speech

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"voxchat-server/internal/config"
	domainspeech "voxchat-server/internal/domain/speech"
	"voxchat-server/internal/infrastructure/metrics"
	"voxchat-server/internal/utils/platformerrors"
)

type synthesisRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Client implements speech.Synthesizer against a Kokoro-style backend.
type Client struct {
	http         *resty.Client
	model        string
	defaultVoice string
	logger       zerolog.Logger
}

var _ domainspeech.Synthesizer = (*Client)(nil)

// NewClient creates the synthesizer client from configuration.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.TTSBaseURL).
		SetTimeout(cfg.TTSTimeout).
		SetHeader("Content-Type", "application/json")
	if cfg.TTSAPIKey != "" {
		httpClient.SetAuthToken(cfg.TTSAPIKey)
	}

	return &Client{
		http:         httpClient,
		model:        cfg.TTSModel,
		defaultVoice: cfg.DefaultVoice,
		logger:       logger.With().Str("component", "tts_client").Logger(),
	}
}

// Synthesize voices the text and streams back the WAV response body. The
// caller owns the returned reader.
func (c *Client) Synthesize(ctx context.Context, req domainspeech.SynthesisRequest) (io.ReadCloser, error) {
	voice := ResolveVoice(req.Voice, c.defaultVoice)

	start := time.Now()
	response, err := c.http.R().
		SetContext(ctx).
		SetBody(synthesisRequest{
			Model:          c.model,
			Input:          req.Text,
			Voice:          voice,
			ResponseFormat: "wav",
		}).
		SetDoNotParseResponse(true).
		Post("/audio/speech")
	if err != nil {
		metrics.SynthesisTotal.WithLabelValues("error").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "speech synthesis failed", err, "tts-failed")
	}

	if response.StatusCode() >= 400 {
		body, _ := io.ReadAll(io.LimitReader(response.RawBody(), 2048))
		response.RawBody().Close()
		metrics.SynthesisTotal.WithLabelValues("error").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("speech synthesis returned status %d", response.StatusCode()),
			fmt.Errorf("%s", body), "tts-status")
	}

	metrics.SynthesisTotal.WithLabelValues("ok").Inc()
	c.logger.Debug().
		Str("voice", voice).
		Int("text_length", len(req.Text)).
		Dur("duration", time.Since(start)).
		Msg("speech synthesized")

	return response.RawBody(), nil
}
