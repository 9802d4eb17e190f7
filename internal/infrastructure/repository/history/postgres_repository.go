// Package history persists the per-session turn log in PostgreSQL.
package history

import (
	"context"

	"gorm.io/gorm"

	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/infrastructure/database/entities"
	"voxchat-server/internal/infrastructure/metrics"
	"voxchat-server/internal/utils/platformerrors"
)

// PostgresRepository implements chat.HistoryRepository with GORM.
type PostgresRepository struct {
	db *gorm.DB
}

var _ chat.HistoryRepository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a history repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, turn *chat.Turn) error {
	entity, err := entities.NewSchemaTurn(turn)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal, "failed to encode turn", err, "history-encode")
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to append turn", err, "history-append")
	}
	turn.ID = entity.ID
	metrics.TurnsPersistedTotal.Inc()
	return nil
}

// BulkAppend inserts all turns in one statement, preserving slice order.
func (r *PostgresRepository) BulkAppend(ctx context.Context, turns []*chat.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	rows := make([]*entities.Turn, 0, len(turns))
	for _, turn := range turns {
		entity, err := entities.NewSchemaTurn(turn)
		if err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal, "failed to encode turn", err, "history-encode")
		}
		rows = append(rows, entity)
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to append turns", err, "history-bulk-append")
	}

	for i, row := range rows {
		turns[i].ID = row.ID
	}
	metrics.TurnsPersistedTotal.Add(float64(len(rows)))
	return nil
}

func (r *PostgresRepository) ListBySession(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	var rows []entities.Turn
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sequence ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list turns", err, "history-list")
	}

	turns := make([]chat.Turn, 0, len(rows))
	for i := range rows {
		turn, err := rows[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal, "failed to decode turn", err, "history-decode")
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *PostgresRepository) ListUserContent(ctx context.Context, sessionID string) ([]string, error) {
	var rows []entities.Turn
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND role = ?", sessionID, string(chat.RoleUser)).
		Order("sequence ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list user turns", err, "history-list-user")
	}

	contents := make([]string, 0, len(rows))
	for i := range rows {
		turn, err := rows[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal, "failed to decode turn", err, "history-decode")
		}
		contents = append(contents, turn.Content)
	}
	return contents, nil
}

func (r *PostgresRepository) ListSessionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entities.Turn{}).
		Distinct("session_id").
		Pluck("session_id", &ids).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list session ids", err, "history-session-ids")
	}
	return ids, nil
}

func (r *PostgresRepository) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Turn{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count turns", err, "history-count")
	}
	return count, nil
}

func (r *PostgresRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&entities.Turn{})
	if result.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete turns", result.Error, "history-delete")
	}
	return result.RowsAffected, nil
}
