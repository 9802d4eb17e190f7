package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"voxchat-server/internal/domain/chat"
)

// JSONMap stores a string map as a jsonb column.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan JSONMap: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, m)
}

// ChatSession is the registry row that gives a session its display name.
type ChatSession struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	SessionID   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(256);not null"`
	Metadata    JSONMap   `gorm:"type:jsonb"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// EtoD converts the entity to the domain session.
func (e *ChatSession) EtoD() chat.Session {
	return chat.Session{
		ID:          e.ID,
		SessionID:   e.SessionID,
		DisplayName: e.DisplayName,
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// NewSchemaChatSession converts a domain session to its entity.
func NewSchemaChatSession(s *chat.Session) *ChatSession {
	return &ChatSession{
		ID:          s.ID,
		SessionID:   s.SessionID,
		DisplayName: s.DisplayName,
		Metadata:    JSONMap(s.Metadata),
	}
}
