package llm

import "context"

// Chat roles understood by OpenAI-compatible backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a chat completion prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionProvider runs chat completions against a model backend.
type CompletionProvider interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// Transcriber converts recorded speech into text. Implementations return a
// validation error when the audio contains no recognizable speech, so callers
// never have to treat an empty string as a signal.
type Transcriber interface {
	Transcribe(ctx context.Context, fileName string, data []byte) (string, error)
}
