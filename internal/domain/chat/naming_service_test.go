package chat

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxchat-server/internal/utils/platformerrors"
)

func seedExchange(t *testing.T, history *fakeHistoryRepo, sessionID, question, answer string, sequence int) {
	t.Helper()
	err := history.BulkAppend(context.Background(), []*Turn{
		NewTurn(sessionID, RoleUser, question, sequence),
		NewTurn(sessionID, RoleAssistant, answer, sequence+1),
	})
	require.NoError(t, err)
}

func TestGenerateName(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes user questions only", func(t *testing.T) {
		history := newFakeHistoryRepo()
		seedExchange(t, history, "s1", "How do tides work?", "Gravity from the moon.", 0)
		seedExchange(t, history, "s1", "And spring tides?", "Sun and moon align.", 2)

		provider := &fakeProvider{reply: "Ocean Tides Explained"}
		svc := NewNamingService(history, provider, "test-model", zerolog.Nop())

		name, err := svc.GenerateName(ctx, "s1", "")
		require.NoError(t, err)
		assert.Equal(t, "Ocean Tides Explained", name)

		require.Len(t, provider.lastMsgs, 2)
		prompt := provider.lastMsgs[1].Content
		assert.Contains(t, prompt, "How do tides work?")
		assert.Contains(t, prompt, "And spring tides?")
		assert.NotContains(t, prompt, "Gravity from the moon.")
	})

	t.Run("strips reasoning and quotes from the name", func(t *testing.T) {
		history := newFakeHistoryRepo()
		seedExchange(t, history, "s1", "hello", "hi", 0)

		provider := &fakeProvider{reply: "<think>short is better</think>\"Friendly Greeting\""}
		svc := NewNamingService(history, provider, "test-model", zerolog.Nop())

		name, err := svc.GenerateName(ctx, "s1", "")
		require.NoError(t, err)
		assert.Equal(t, "Friendly Greeting", name)
	})

	t.Run("fails on empty history", func(t *testing.T) {
		svc := NewNamingService(newFakeHistoryRepo(), &fakeProvider{reply: "x"}, "test-model", zerolog.Nop())

		_, err := svc.GenerateName(ctx, "missing", "")
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	})

	t.Run("fails on empty session id", func(t *testing.T) {
		svc := NewNamingService(newFakeHistoryRepo(), &fakeProvider{reply: "x"}, "test-model", zerolog.Nop())

		_, err := svc.GenerateName(ctx, "", "")
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	})

	t.Run("fails when the model returns only reasoning", func(t *testing.T) {
		history := newFakeHistoryRepo()
		seedExchange(t, history, "s1", "hello", "hi", 0)

		provider := &fakeProvider{reply: "<think>hmm</think>"}
		svc := NewNamingService(history, provider, "test-model", zerolog.Nop())

		_, err := svc.GenerateName(ctx, "s1", "")
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	})
}
