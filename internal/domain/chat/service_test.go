package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/utils/platformerrors"
)

func newTestService(history *fakeHistoryRepo, provider *fakeProvider) *DefaultService {
	return NewService(history, provider, "test-model", "You are a test assistant.", zerolog.Nop())
}

func TestConverse(t *testing.T) {
	ctx := context.Background()

	t.Run("records both sides of the exchange", func(t *testing.T) {
		history := newFakeHistoryRepo()
		provider := &fakeProvider{reply: "Hi there!"}
		svc := newTestService(history, provider)

		reply, err := svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: "Hello?"})
		require.NoError(t, err)
		assert.Equal(t, "Hi there!", reply)

		turns, err := history.ListBySession(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, RoleUser, turns[0].Role)
		assert.Equal(t, "Hello?", turns[0].Content)
		assert.Equal(t, 0, turns[0].Sequence)
		assert.Equal(t, RoleAssistant, turns[1].Role)
		assert.Equal(t, "Hi there!", turns[1].Content)
		assert.Equal(t, 1, turns[1].Sequence)
	})

	t.Run("replays history into the prompt", func(t *testing.T) {
		history := newFakeHistoryRepo()
		provider := &fakeProvider{reply: "first"}
		svc := newTestService(history, provider)

		_, err := svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: "one"})
		require.NoError(t, err)

		provider.reply = "second"
		_, err = svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: "two"})
		require.NoError(t, err)

		// system + prior user + prior assistant + new question
		require.Len(t, provider.lastMsgs, 4)
		assert.Equal(t, llm.RoleSystem, provider.lastMsgs[0].Role)
		assert.Equal(t, "one", provider.lastMsgs[1].Content)
		assert.Equal(t, "first", provider.lastMsgs[2].Content)
		assert.Equal(t, "two", provider.lastMsgs[3].Content)
	})

	t.Run("strips reasoning before storing", func(t *testing.T) {
		history := newFakeHistoryRepo()
		provider := &fakeProvider{reply: "<think>let me see</think>Four."}
		svc := newTestService(history, provider)

		reply, err := svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: "2+2?"})
		require.NoError(t, err)
		assert.Equal(t, "Four.", reply)

		turns, _ := history.ListBySession(ctx, "s1")
		require.Len(t, turns, 2)
		assert.Equal(t, "Four.", turns[1].Content)
	})

	t.Run("rejects empty session id", func(t *testing.T) {
		svc := newTestService(newFakeHistoryRepo(), &fakeProvider{reply: "x"})

		_, err := svc.Converse(ctx, ConverseParams{SessionID: "  ", Question: "hi"})
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	})

	t.Run("rejects empty question", func(t *testing.T) {
		svc := newTestService(newFakeHistoryRepo(), &fakeProvider{reply: "x"})

		_, err := svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: ""})
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	})

	t.Run("maps provider failure to external error", func(t *testing.T) {
		history := newFakeHistoryRepo()
		provider := &fakeProvider{err: errors.New("connection refused")}
		svc := newTestService(history, provider)

		_, err := svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: "hi"})
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))

		turns, _ := history.ListBySession(ctx, "s1")
		assert.Empty(t, turns)
	})

	t.Run("fails when the exchange cannot be recorded", func(t *testing.T) {
		history := newFakeHistoryRepo()
		history.appendErr = platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to append turns", nil, "history-bulk-append")
		svc := newTestService(history, &fakeProvider{reply: "lost"})

		reply, err := svc.Converse(ctx, ConverseParams{SessionID: "s1", Question: "hi"})
		assert.Empty(t, reply)
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError))
	})

	t.Run("serializes concurrent exchanges per session", func(t *testing.T) {
		history := newFakeHistoryRepo()
		provider := &fakeProvider{}
		var n int
		provider.replyFn = func(string, []llm.Message) (string, error) {
			n++
			return fmt.Sprintf("reply-%d", n), nil
		}
		svc := newTestService(history, provider)

		const workers = 8
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := svc.Converse(ctx, ConverseParams{
					SessionID: "shared",
					Question:  fmt.Sprintf("question-%d", i),
				})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		turns, err := history.ListBySession(ctx, "shared")
		require.NoError(t, err)
		require.Len(t, turns, workers*2)
		for i, turn := range turns {
			assert.Equal(t, i, turn.Sequence)
		}
	})
}
