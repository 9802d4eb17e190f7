package speech

import (
	"context"
	"io"
)

// ContentType of all synthesized audio.
const ContentTypeWAV = "audio/wav"

// SynthesisRequest carries the text to voice. Voice is a friendly voice name;
// unknown names fall back to the configured default.
type SynthesisRequest struct {
	Text  string
	Voice string
}

// Synthesizer turns text into an audio stream. The returned reader streams a
// WAV container and must be closed by the caller.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (io.ReadCloser, error)
}
