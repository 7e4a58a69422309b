package workers

import (
	"context"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by the config.
// Currently that is the periodic full-sync worker; with no schedule
// configured the aggregate is empty and Run is a no-op.
func NewWorkers(ctx context.Context, syncs service.ChannelSyncService, puller Puller, cfg *config.StructuredConfig, logger *logger.Logger) (*Workers, error) {
	workers := &Workers{}

	if cfg.Sync.Schedule != "" {
		sync, err := newSyncWorker(ctx, syncs, puller, cfg.Sync.Schedule, logger)
		if err != nil {
			return nil, err
		}
		workers.workers = append(workers.workers, sync)
	}

	return workers, nil
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
