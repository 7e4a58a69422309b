package workers

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/service"
	"github.com/mwbots/ircservserv/models"
)

// Puller updates the channel-config checkout before a scheduled sweep.
// Satisfied by gitcfg.Repo.
type Puller interface {
	Pull(ctx context.Context) ([]string, error)
}

// syncWorker runs `pull + sync all` on a cron schedule, keeping every
// channel converged even when nobody pushes or asks.
type syncWorker struct {
	ctx    context.Context
	syncs  service.ChannelSyncService
	puller Puller
	cron   *cron.Cron
	logger *logger.Logger
}

func newSyncWorker(ctx context.Context, syncs service.ChannelSyncService, puller Puller, schedule string, logger *logger.Logger) (*syncWorker, error) {
	worker := &syncWorker{
		ctx:    ctx,
		syncs:  syncs,
		puller: puller,
		cron:   cron.New(),
		logger: logger,
	}

	if _, err := worker.cron.AddFunc(schedule, worker.sweep); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", schedule, err)
	}

	logger.Info().Str("schedule", schedule).Msg("periodic sync worker created")
	return worker, nil
}

func (w *syncWorker) Run() {
	w.cron.Start()

	go func() {
		<-w.ctx.Done()
		w.cron.Stop()
	}()
}

// sweep is one scheduled pass. A failed pull is logged and the sweep
// still syncs against the checkout it has.
func (w *syncWorker) sweep() {
	w.logger.Info().Msg("starting scheduled sync sweep")

	if _, err := w.puller.Pull(w.ctx); err != nil {
		w.logger.Warn().Err(err).Msg("scheduled pull failed, syncing existing checkout")
	}

	reports, err := w.syncs.SyncAll(w.ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("scheduled sync sweep aborted")
		return
	}

	var failed int
	for _, report := range reports {
		if report.Run.Status == models.SyncStatusFailed || report.Run.Status == models.SyncStatusPartial {
			failed++
		}
	}
	w.logger.Info().Int("channels", len(reports)).Int("failed", failed).Msg("scheduled sync sweep finished")
}
