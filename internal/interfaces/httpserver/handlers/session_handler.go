package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/interfaces/httpserver/requests"
	"voxchat-server/internal/interfaces/httpserver/responses"
	"voxchat-server/internal/utils/platformerrors"
)

// SessionHandler exposes the session registry over HTTP.
type SessionHandler struct {
	service chat.SessionService
	log     zerolog.Logger
}

// NewSessionHandler constructs the session handler.
func NewSessionHandler(service chat.SessionService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With().Str("component", "session_handler").Logger(),
	}
}

// List handles GET /v1/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.service.List(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list sessions")
		return
	}

	payload := make([]responses.SessionPayload, 0, len(sessions))
	for _, session := range sessions {
		payload = append(payload, responses.SessionFromDomain(session))
	}
	c.JSON(http.StatusOK, responses.SessionListResponse{Data: payload})
}

// GenerateName handles POST /v1/sessions/:session_id/name.
func (h *SessionHandler) GenerateName(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req requests.GenerateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "name-bad-body")
		return
	}

	name, err := h.service.CreateGeneratedName(c.Request.Context(), sessionID, req.Model)
	if err != nil {
		responses.HandleError(c, err, "failed to name session")
		return
	}

	c.JSON(http.StatusOK, responses.NamePayload{SessionID: sessionID, DisplayName: name})
}

// Rename handles PATCH /v1/sessions/:session_id/name.
func (h *SessionHandler) Rename(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req requests.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "name is required", "rename-bad-body")
		return
	}

	if err := h.service.Rename(c.Request.Context(), sessionID, req.Name); err != nil {
		responses.HandleError(c, err, "failed to rename session")
		return
	}

	c.JSON(http.StatusOK, responses.NamePayload{SessionID: sessionID, DisplayName: req.Name})
}

// Delete handles DELETE /v1/sessions/:session_id.
func (h *SessionHandler) Delete(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.service.Delete(c.Request.Context(), sessionID); err != nil {
		responses.HandleError(c, err, "failed to delete session")
		return
	}

	c.JSON(http.StatusOK, responses.DeletePayload{SessionID: sessionID, Deleted: true})
}

// History handles GET /v1/sessions/:session_id/history.
func (h *SessionHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")

	turns, err := h.service.History(c.Request.Context(), sessionID)
	if err != nil {
		responses.HandleError(c, err, "failed to load session history")
		return
	}

	c.JSON(http.StatusOK, responses.HistoryFromDomain(sessionID, turns))
}
