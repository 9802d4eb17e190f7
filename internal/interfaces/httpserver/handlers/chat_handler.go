package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/domain/speech"
	"voxchat-server/internal/interfaces/httpserver/requests"
	"voxchat-server/internal/interfaces/httpserver/responses"
	"voxchat-server/internal/utils/platformerrors"
	"voxchat-server/internal/utils/textutils"
)

// maxUploadBytes caps audio uploads at 25 MiB, matching the transcription
// backend's own limit.
const maxUploadBytes = 25 << 20

// ChatHandler exposes the text and voice conversation endpoints.
type ChatHandler struct {
	service     chat.Service
	transcriber llm.Transcriber
	synthesizer speech.Synthesizer
	log         zerolog.Logger
}

// NewChatHandler constructs the chat handler.
func NewChatHandler(service chat.Service, transcriber llm.Transcriber, synthesizer speech.Synthesizer, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:     service,
		transcriber: transcriber,
		synthesizer: synthesizer,
		log:         log.With().Str("component", "chat_handler").Logger(),
	}
}

// Text handles POST /v1/chat/text.
func (h *ChatHandler) Text(c *gin.Context) {
	var req requests.TextMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "session_id and question are required", "chat-bad-body")
		return
	}

	reply, err := h.service.Converse(c.Request.Context(), chat.ConverseParams{
		SessionID: req.SessionID,
		Model:     req.Model,
		Question:  req.Question,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to process message")
		return
	}

	c.JSON(http.StatusOK, responses.ReplyPayload{
		SessionID: req.SessionID,
		Model:     req.Model,
		Reply:     reply,
	})
}

// Audio handles POST /v1/chat/audio. The multipart upload is transcribed,
// answered within the session's context, and the reply is voiced back as a
// WAV stream.
func (h *ChatHandler) Audio(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "session_id is required", "audio-empty-session")
		return
	}
	model := c.PostForm("model")
	voice := c.PostForm("voice")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "audio file is required", "audio-missing-file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "uploaded file is not audio", "audio-bad-content-type")
		return
	}
	if header.Size > maxUploadBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "audio file is too large", "audio-too-large")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeInternal, "failed to read audio file", "audio-read-failed")
		return
	}

	question, err := h.transcriber.Transcribe(c.Request.Context(), header.Filename, data)
	if err != nil {
		responses.HandleError(c, err, "failed to transcribe audio")
		return
	}

	reply, err := h.service.Converse(c.Request.Context(), chat.ConverseParams{
		SessionID: sessionID,
		Model:     model,
		Question:  question,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to process message")
		return
	}

	// Markdown markers sound wrong when read aloud, so the reply is flattened
	// to plain text before synthesis.
	speechText := textutils.MarkdownToPlain(reply)
	if speechText == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeInternal, "reply has no speakable content", "audio-empty-reply")
		return
	}

	stream, err := h.synthesizer.Synthesize(c.Request.Context(), speech.SynthesisRequest{
		Text:  speechText,
		Voice: voice,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to synthesize reply")
		return
	}
	defer stream.Close()

	h.log.Debug().
		Str("session_id", sessionID).
		Str("file", header.Filename).
		Int("question_length", len(question)).
		Msg("voice exchange completed")

	c.DataFromReader(http.StatusOK, -1, speech.ContentTypeWAV, stream, nil)
}
