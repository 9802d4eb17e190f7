// Package textutils cleans model output before it reaches users or the
// speech synthesizer.
package textutils

import (
	"regexp"
	"strings"
)

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	// An opening tag without a closing one means the model was cut off while
	// reasoning; everything after it is discarded.
	thinkOpenRe = regexp.MustCompile(`(?s)<think>.*$`)

	fencedCodeRe    = regexp.MustCompile("(?m)^\\s*```[a-zA-Z0-9_+-]*\\s*$")
	inlineCodeRe    = regexp.MustCompile("`([^`\n]+)`")
	imageRe         = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkRe          = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingRe       = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRe          = regexp.MustCompile(`\*\*(\S(?:[^*]*\S)?)\*\*`)
	italicRe        = regexp.MustCompile(`\*(\S(?:[^*\n]*\S)?)\*`)
	boldUnderRe     = regexp.MustCompile(`__(\S(?:[^_]*\S)?)__`)
	italicUnderRe   = regexp.MustCompile(`\b_(\S(?:[^_\n]*\S)?)_\b`)
	strikeRe        = regexp.MustCompile(`~~(\S(?:[^~]*\S)?)~~`)
	blockquoteRe    = regexp.MustCompile(`(?m)^\s*>\s?`)
	bulletRe        = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	orderedListRe   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	horizontalRe    = regexp.MustCompile(`(?m)^\s*([-*_]\s*){3,}$`)
	htmlTagRe       = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
)

// StripReasoning removes chain-of-thought blocks emitted by reasoning models
// between <think> tags, including an unterminated trailing block.
func StripReasoning(s string) string {
	s = thinkBlockRe.ReplaceAllString(s, "")
	s = thinkOpenRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// MarkdownToPlain converts markdown to plain text suitable for speech
// synthesis. Structural markers are dropped while the visible text, including
// code contents and link labels, is kept. Plain input passes through
// unchanged, so the function is safe to apply twice.
func MarkdownToPlain(s string) string {
	s = fencedCodeRe.ReplaceAllString(s, "")
	s = imageRe.ReplaceAllString(s, "$1")
	s = linkRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = boldUnderRe.ReplaceAllString(s, "$1")
	s = italicUnderRe.ReplaceAllString(s, "$1")
	s = strikeRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")
	s = blockquoteRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")
	s = orderedListRe.ReplaceAllString(s, "")
	s = horizontalRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = trailingSpaceRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// ForSpeech prepares a model reply for the synthesizer.
func ForSpeech(s string) string {
	return MarkdownToPlain(StripReasoning(s))
}
