package responses

import (
	"voxchat-server/internal/domain/chat"
)

// ReplyPayload is the answer to a text exchange.
type ReplyPayload struct {
	SessionID string `json:"session_id"`
	Model     string `json:"model"`
	Reply     string `json:"reply"`
}

// TurnPayload is one history entry returned to clients.
type TurnPayload struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Sequence  int    `json:"sequence"`
	CreatedAt int64  `json:"created_at"`
}

// HistoryResponse wraps a session's turns for consistent responses.
type HistoryResponse struct {
	SessionID string        `json:"session_id"`
	Data      []TurnPayload `json:"data"`
}

// HistoryFromDomain maps domain turns to the history DTO.
func HistoryFromDomain(sessionID string, turns []chat.Turn) HistoryResponse {
	data := make([]TurnPayload, 0, len(turns))
	for _, turn := range turns {
		data = append(data, TurnPayload{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Sequence:  turn.Sequence,
			CreatedAt: turn.CreatedAt.Unix(),
		})
	}
	return HistoryResponse{SessionID: sessionID, Data: data}
}
