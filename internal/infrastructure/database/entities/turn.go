package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"voxchat-server/internal/domain/chat"
)

// turnContent is the jsonb payload of a turn. Content is wrapped in an object
// so richer payloads can be added without a column migration.
type turnContent struct {
	Text string `json:"text"`
}

// Turn is one stored message of a session history.
type Turn struct {
	ID        uint           `gorm:"primaryKey"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	SessionID string         `gorm:"type:varchar(64);index;not null"`
	Role      string         `gorm:"size:32;not null"`
	Content   datatypes.JSON `gorm:"type:jsonb"`
	Sequence  int            `gorm:"not null"`
}

func (Turn) TableName() string {
	return "turns"
}

// EtoD converts the entity to the domain turn.
func (e *Turn) EtoD() (chat.Turn, error) {
	var content turnContent
	if len(e.Content) > 0 {
		if err := json.Unmarshal(e.Content, &content); err != nil {
			return chat.Turn{}, fmt.Errorf("failed to decode turn %d content: %w", e.ID, err)
		}
	}
	return chat.Turn{
		ID:        e.ID,
		SessionID: e.SessionID,
		Role:      chat.Role(e.Role),
		Content:   content.Text,
		Sequence:  e.Sequence,
		CreatedAt: e.CreatedAt,
	}, nil
}

// NewSchemaTurn converts a domain turn to its entity.
func NewSchemaTurn(t *chat.Turn) (*Turn, error) {
	payload, err := json.Marshal(turnContent{Text: t.Content})
	if err != nil {
		return nil, fmt.Errorf("failed to encode turn content: %w", err)
	}
	return &Turn{
		ID:        t.ID,
		SessionID: t.SessionID,
		Role:      string(t.Role),
		Content:   datatypes.JSON(payload),
		Sequence:  t.Sequence,
	}, nil
}
