package speech

import "strings"

// voiceIDs maps friendly voice names to the synthesizer's voice identifiers.
var voiceIDs = map[string]string{
	"bella":    "af_bella",
	"heart":    "af_heart",
	"nicole":   "af_nicole",
	"sarah":    "af_sarah",
	"sky":      "af_sky",
	"adam":     "am_adam",
	"michael":  "am_michael",
	"emma":     "bf_emma",
	"isabella": "bf_isabella",
	"george":   "bm_george",
	"lewis":    "bm_lewis",
}

// ResolveVoice maps a friendly voice name to its backend identifier. Unknown
// or empty names resolve to the fallback so a bad request never breaks
// synthesis.
func ResolveVoice(name, fallback string) string {
	if id, ok := voiceIDs[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	return fallback
}

// VoiceNames lists the friendly names accepted by ResolveVoice.
func VoiceNames() []string {
	names := make([]string, 0, len(voiceIDs))
	for name := range voiceIDs {
		names = append(names, name)
	}
	return names
}
