package chat

import (
	"context"
	"time"
)

// Role indicates who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message within a session's ordered history.
type Turn struct {
	ID        uint      `json:"-"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sequence  int       `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a named conversation thread. The display name lives in the
// session registry; turns are correlated only by SessionID.
type Session struct {
	ID          uint              `json:"-"`
	SessionID   string            `json:"session_id"`
	DisplayName string            `json:"display_name"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTurn creates a turn at the given position in a session.
func NewTurn(sessionID string, role Role, content string, sequence int) *Turn {
	return &Turn{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Sequence:  sequence,
		CreatedAt: time.Now().UTC(),
	}
}

// NewSession creates a registry entry for a session.
func NewSession(sessionID, displayName string, metadata map[string]string) *Session {
	now := time.Now().UTC()
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return &Session{
		SessionID:   sessionID,
		DisplayName: displayName,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HistoryRepository persists the per-session ordered turn log.
type HistoryRepository interface {
	Append(ctx context.Context, turn *Turn) error
	// BulkAppend inserts turns preserving slice order.
	BulkAppend(ctx context.Context, turns []*Turn) error
	ListBySession(ctx context.Context, sessionID string) ([]Turn, error)
	// ListUserContent returns the content of user-authored turns in stored order.
	ListUserContent(ctx context.Context, sessionID string) ([]string, error)
	ListSessionIDs(ctx context.Context) ([]string, error)
	CountBySession(ctx context.Context, sessionID string) (int64, error)
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
}

// SessionRepository persists display names keyed by session id.
type SessionRepository interface {
	// List returns registry entries most-recently-created first.
	List(ctx context.Context) ([]Session, error)
	FindBySessionID(ctx context.Context, sessionID string) (*Session, error)
	// Create fails with a conflict error when the session id is already named.
	Create(ctx context.Context, session *Session) error
	// Upsert creates or overwrites the display name unconditionally.
	Upsert(ctx context.Context, session *Session) error
	// Delete removes the registry entry; deleting a missing session is a no-op.
	Delete(ctx context.Context, sessionID string) error
}
