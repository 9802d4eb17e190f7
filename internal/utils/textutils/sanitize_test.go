package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripReasoning(t *testing.T) {
	t.Run("removes think block", func(t *testing.T) {
		in := "<think>The user wants a greeting.\nI should be brief.</think>Hello there!"
		assert.Equal(t, "Hello there!", StripReasoning(in))
	})

	t.Run("removes multiple blocks", func(t *testing.T) {
		in := "<think>one</think>First.<think>two</think> Second."
		assert.Equal(t, "First. Second.", StripReasoning(in))
	})

	t.Run("drops unterminated block", func(t *testing.T) {
		in := "The answer is 4.<think>wait, let me recheck"
		assert.Equal(t, "The answer is 4.", StripReasoning(in))
	})

	t.Run("passes plain text through", func(t *testing.T) {
		assert.Equal(t, "Nothing to strip.", StripReasoning("Nothing to strip."))
	})
}

func TestMarkdownToPlain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "This is **important** news", "This is important news"},
		{"italic", "a *subtle* hint", "a subtle hint"},
		{"underscore emphasis", "an _aside_ here", "an aside here"},
		{"strikethrough", "it was ~~wrong~~ fixed", "it was wrong fixed"},
		{"heading", "## Setup\nRun the installer.", "Setup\nRun the installer."},
		{"link keeps label", "see [the docs](https://example.com) for more", "see the docs for more"},
		{"image keeps alt", "here ![a chart](chart.png)", "here a chart"},
		{"inline code", "use the `ls` command", "use the ls command"},
		{"bullet list", "- first\n- second", "first\nsecond"},
		{"ordered list", "1. mix\n2. bake", "mix\nbake"},
		{"blockquote", "> quoted wisdom", "quoted wisdom"},
		{"horizontal rule", "above\n\n---\n\nbelow", "above\n\nbelow"},
		{"html tags", "a <b>bold</b> claim", "a bold claim"},
		{"plain text unchanged", "Just a sentence.", "Just a sentence."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToPlain(tt.in))
		})
	}

	t.Run("keeps fenced code contents", func(t *testing.T) {
		in := "Run this:\n```bash\necho hi\n```\nDone."
		got := MarkdownToPlain(in)
		assert.Contains(t, got, "echo hi")
		assert.NotContains(t, got, "```")
		assert.NotContains(t, got, "bash\n")
	})

	t.Run("idempotent", func(t *testing.T) {
		in := "## Title\n\nSome **bold** and a [link](x).\n\n- item"
		once := MarkdownToPlain(in)
		assert.Equal(t, once, MarkdownToPlain(once))
	})
}

func TestForSpeech(t *testing.T) {
	in := "<think>plan the reply</think>**Sure!** Here is `code` and a [guide](u)."
	assert.Equal(t, "Sure! Here is code and a guide.", ForSpeech(in))
}
