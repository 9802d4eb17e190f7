// Package sessionmeta persists the session registry in PostgreSQL.
package sessionmeta

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/infrastructure/database/entities"
	"voxchat-server/internal/utils/platformerrors"
)

// PostgresRepository implements chat.SessionRepository with GORM.
type PostgresRepository struct {
	db *gorm.DB
}

var _ chat.SessionRepository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a session registry repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]chat.Session, error) {
	var rows []entities.ChatSession
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list sessions", err, "sessions-list")
	}

	sessions := make([]chat.Session, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, rows[i].EtoD())
	}
	return sessions, nil
}

func (r *PostgresRepository) FindBySessionID(ctx context.Context, sessionID string) (*chat.Session, error) {
	var row entities.ChatSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "session not found", err, "sessions-not-found")
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find session", err, "sessions-find")
	}

	session := row.EtoD()
	return &session, nil
}

func (r *PostgresRepository) Create(ctx context.Context, session *chat.Session) error {
	entity := entities.NewSchemaChatSession(session)
	err := r.db.WithContext(ctx).Create(entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict, "session is already named", err, "sessions-duplicate")
	}
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create session", err, "sessions-create")
	}

	session.ID = entity.ID
	session.CreatedAt = entity.CreatedAt
	session.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, session *chat.Session) error {
	entity := entities.NewSchemaChatSession(session)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "metadata", "updated_at"}),
		}).
		Create(entity).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to upsert session", err, "sessions-upsert")
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, sessionID string) error {
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&entities.ChatSession{}).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete session", err, "sessions-delete")
	}
	return nil
}
