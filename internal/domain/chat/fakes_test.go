package chat

import (
	"context"
	"sort"
	"sync"

	"voxchat-server/internal/domain/llm"
	"voxchat-server/internal/utils/platformerrors"
)

// fakeHistoryRepo is an in-memory HistoryRepository.
type fakeHistoryRepo struct {
	mu     sync.Mutex
	turns  []Turn
	nextID uint

	appendErr error
	listErr   error
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{nextID: 1}
}

func (f *fakeHistoryRepo) Append(ctx context.Context, turn *Turn) error {
	return f.BulkAppend(ctx, []*Turn{turn})
}

func (f *fakeHistoryRepo) BulkAppend(_ context.Context, turns []*Turn) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, turn := range turns {
		turn.ID = f.nextID
		f.nextID++
		f.turns = append(f.turns, *turn)
	}
	return nil
}

func (f *fakeHistoryRepo) ListBySession(_ context.Context, sessionID string) ([]Turn, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Turn
	for _, turn := range f.turns {
		if turn.SessionID == sessionID {
			out = append(out, turn)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (f *fakeHistoryRepo) ListUserContent(ctx context.Context, sessionID string) ([]string, error) {
	turns, err := f.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, turn := range turns {
		if turn.Role == RoleUser {
			out = append(out, turn.Content)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) ListSessionIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]struct{})
	var ids []string
	for _, turn := range f.turns {
		if _, ok := seen[turn.SessionID]; !ok {
			seen[turn.SessionID] = struct{}{}
			ids = append(ids, turn.SessionID)
		}
	}
	return ids, nil
}

func (f *fakeHistoryRepo) CountBySession(_ context.Context, sessionID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, turn := range f.turns {
		if turn.SessionID == sessionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeHistoryRepo) DeleteBySession(_ context.Context, sessionID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []Turn
	var removed int64
	for _, turn := range f.turns {
		if turn.SessionID == sessionID {
			removed++
			continue
		}
		kept = append(kept, turn)
	}
	f.turns = kept
	return removed, nil
}

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]Session)}
}

func (f *fakeSessionRepo) List(context.Context) ([]Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Session, 0, len(f.sessions))
	for _, session := range f.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "session not found", nil, "sessions-not-found")
	}
	return &session, nil
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[session.SessionID]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "session is already named", nil, "sessions-duplicate")
	}
	f.sessions[session.SessionID] = *session
	return nil
}

func (f *fakeSessionRepo) Upsert(_ context.Context, session *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.SessionID] = *session
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

// fakeProvider scripts completion replies.
type fakeProvider struct {
	mu       sync.Mutex
	reply    string
	err      error
	calls    int
	lastMsgs []llm.Message
	replyFn  func(model string, messages []llm.Message) (string, error)
}

func (f *fakeProvider) Complete(_ context.Context, model string, messages []llm.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMsgs = messages
	if f.replyFn != nil {
		return f.replyFn(model, messages)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
