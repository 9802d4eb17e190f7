package responses

import (
	"voxchat-server/internal/domain/chat"
)

// SessionPayload is one registry entry returned to clients.
type SessionPayload struct {
	SessionID   string            `json:"session_id"`
	DisplayName string            `json:"display_name"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   int64             `json:"created_at"`
	UpdatedAt   int64             `json:"updated_at"`
}

// SessionListResponse wraps registry entries for consistent responses.
type SessionListResponse struct {
	Data []SessionPayload `json:"data"`
}

// SessionFromDomain maps a domain session to its DTO.
func SessionFromDomain(s chat.Session) SessionPayload {
	return SessionPayload{
		SessionID:   s.SessionID,
		DisplayName: s.DisplayName,
		Metadata:    s.Metadata,
		CreatedAt:   s.CreatedAt.Unix(),
		UpdatedAt:   s.UpdatedAt.Unix(),
	}
}

// NamePayload is the result of naming or renaming a session.
type NamePayload struct {
	SessionID   string `json:"session_id"`
	DisplayName string `json:"display_name"`
}

// DeletePayload confirms a session deletion.
type DeletePayload struct {
	SessionID string `json:"session_id"`
	Deleted   bool   `json:"deleted"`
}
