package handlers_test

import (
	"context"
	"io"

	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/domain/speech"
)

// MockChatService is a mock implementation of chat.Service for testing.
type MockChatService struct {
	ConverseFunc func(ctx context.Context, params chat.ConverseParams) (string, error)
}

func (m *MockChatService) Converse(ctx context.Context, params chat.ConverseParams) (string, error) {
	if m.ConverseFunc != nil {
		return m.ConverseFunc(ctx, params)
	}
	return "", nil
}

// MockSessionService is a mock implementation of chat.SessionService.
type MockSessionService struct {
	ListFunc                func(ctx context.Context) ([]chat.Session, error)
	HistoryFunc             func(ctx context.Context, sessionID string) ([]chat.Turn, error)
	CreateGeneratedNameFunc func(ctx context.Context, sessionID, model string) (string, error)
	RenameFunc              func(ctx context.Context, sessionID, name string) error
	DeleteFunc              func(ctx context.Context, sessionID string) error
	UnnamedSessionIDsFunc   func(ctx context.Context) ([]string, error)
}

func (m *MockSessionService) List(ctx context.Context) ([]chat.Session, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionService) History(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *MockSessionService) CreateGeneratedName(ctx context.Context, sessionID, model string) (string, error) {
	if m.CreateGeneratedNameFunc != nil {
		return m.CreateGeneratedNameFunc(ctx, sessionID, model)
	}
	return "", nil
}

func (m *MockSessionService) Rename(ctx context.Context, sessionID, name string) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, sessionID, name)
	}
	return nil
}

func (m *MockSessionService) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSessionService) UnnamedSessionIDs(ctx context.Context) ([]string, error) {
	if m.UnnamedSessionIDsFunc != nil {
		return m.UnnamedSessionIDsFunc(ctx)
	}
	return nil, nil
}

// MockTranscriber is a mock implementation of llm.Transcriber.
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, fileName string, data []byte) (string, error)
	Calls          int
}

func (m *MockTranscriber) Transcribe(ctx context.Context, fileName string, data []byte) (string, error) {
	m.Calls++
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, fileName, data)
	}
	return "", nil
}

// MockSynthesizer is a mock implementation of speech.Synthesizer.
type MockSynthesizer struct {
	SynthesizeFunc func(ctx context.Context, req speech.SynthesisRequest) (io.ReadCloser, error)
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, req speech.SynthesisRequest) (io.ReadCloser, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, req)
	}
	return io.NopCloser(nil), nil
}
