package requests

// TextMessageRequest is the body of POST /v1/chat/text.
type TextMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Model     string `json:"model"`
	Question  string `json:"question" binding:"required"`
}
