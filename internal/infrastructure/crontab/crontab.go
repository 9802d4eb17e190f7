// Package crontab runs the periodic session name backfill.
package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"voxchat-server/internal/config"
	"voxchat-server/internal/domain/chat"
	"voxchat-server/internal/utils/platformerrors"
)

// CronJobTimeout bounds each job execution.
const CronJobTimeout = 10 * time.Minute

// Crontab names sessions that accumulated history without ever being named,
// so the session list stays readable even when clients skip the naming call.
type Crontab struct {
	ctab        *crontab.Crontab
	sessions    chat.SessionService
	namingModel string
	interval    int
	enabled     bool
	logger      zerolog.Logger
}

// NewCrontab creates the backfill scheduler.
func NewCrontab(sessions chat.SessionService, cfg *config.Config, logger zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:        crontab.New(),
		sessions:    sessions,
		namingModel: cfg.NamingModel,
		interval:    cfg.NameBackfillInterval,
		enabled:     cfg.NameBackfillEnabled,
		logger:      logger.With().Str("component", "crontab").Logger(),
	}
}

// Run schedules the backfill job and blocks until ctx is cancelled.
func (c *Crontab) Run(ctx context.Context) error {
	if !c.enabled {
		c.logger.Info().Msg("session name backfill disabled")
		<-ctx.Done()
		return nil
	}

	// execute once on server start
	c.backfillSessionNames(ctx)

	cronExpr := fmt.Sprintf("*/%d * * * *", c.interval)
	if err := c.ctab.AddJob(cronExpr, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.backfillSessionNames(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add name backfill job")
	}
	c.logger.Info().Int("interval_minutes", c.interval).Msg("session name backfill scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) backfillSessionNames(ctx context.Context) {
	ids, err := c.sessions.UnnamedSessionIDs(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to list unnamed sessions")
		return
	}
	if len(ids) == 0 {
		return
	}

	named := 0
	for _, id := range ids {
		name, err := c.sessions.CreateGeneratedName(ctx, id, c.namingModel)
		if err != nil {
			// Conflicts mean another caller named the session first.
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
				continue
			}
			c.logger.Error().Err(err).Str("session_id", id).Msg("failed to backfill session name")
			continue
		}
		named++
		c.logger.Info().Str("session_id", id).Str("display_name", name).Msg("session name backfilled")
	}

	if named > 0 {
		c.logger.Info().Int("named", named).Int("candidates", len(ids)).Msg("name backfill finished")
	}
}
