package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/irc"
	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/internal/store"
	"github.com/mwbots/ircservserv/internal/utils"
	"github.com/mwbots/ircservserv/models"
)

// channelSyncService is the concrete implementation of
// ChannelSyncService. One sync walks the whole pipeline: load the
// channel's declarative config, query ChanServ for the live access
// list, reconcile the two, and apply the resulting commands in order.
type channelSyncService struct {
	transport  irc.Transport
	reconciler ReconcileService
	runs       store.SyncRunRepository // nil disables run recording
	notifier   Notifier                // nil disables failure notifications
	channels   config.Channels
	syncCfg    config.Sync
	botAccount string
	uuid       *utils.UUIDGenerator
	logger     *logger.Logger

	mu      sync.Mutex
	syncing map[string]bool
}

// NewChannelSyncService constructs a ChannelSyncService. runs and
// notifier may be nil when persistence or webhooks are disabled.
func NewChannelSyncService(
	transport irc.Transport,
	reconciler ReconcileService,
	runs store.SyncRunRepository,
	notifier Notifier,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) ChannelSyncService {
	return &channelSyncService{
		transport:  transport,
		reconciler: reconciler,
		runs:       runs,
		notifier:   notifier,
		channels:   cfg.Channels,
		syncCfg:    cfg.Sync,
		botAccount: cfg.IRC.Account,
		uuid:       utils.NewUUIDGenerator(),
		logger:     logger,
		syncing:    make(map[string]bool),
	}
}

// SyncChannel implements ChannelSyncService.
//
// Only one sync per channel runs at a time; a second request while one
// is in flight fails with [ErrSyncInProgress] instead of queueing, so a
// slow ChanServ cannot pile up identical syncs behind itself.
//
// Commands are applied strictly in plan order. The first apply failure
// stops the batch: the channel is left part-reconciled and the run is
// recorded as partial (or failed when nothing was applied), to be
// finished by the next sync.
func (s *channelSyncService) SyncChannel(ctx context.Context, channel string) (models.SyncReport, error) {
	if !s.acquire(channel) {
		return models.SyncReport{}, fmt.Errorf("%w: %s", ErrSyncInProgress, channel)
	}
	defer s.release(channel)

	log := logger.FromContext(ctx)
	run := models.SyncRun{
		ID:        s.uuid.Generate(),
		Channel:   channel,
		StartedAt: time.Now().UTC(),
	}

	commands, err := s.plan(ctx, channel)
	if err != nil {
		log.Err(err).Str("channel", channel).Msg("sync planning failed")
		run.Status = models.SyncStatusFailed
		run.Error = err.Error()
		report := s.finish(ctx, run, nil, nil)
		return report, err
	}

	run.Planned = len(commands)
	if len(commands) == 0 {
		run.Status = models.SyncStatusNoop
		lines := []string{fmt.Sprintf("No flag updates for %s", channel)}
		return s.finish(ctx, run, nil, lines), nil
	}

	lines := []string{fmt.Sprintf("Syncing %s", channel)}

	var applyErr error
	for _, cmd := range commands {
		if applyErr = s.transport.ApplyFlagChange(ctx, cmd.Channel, cmd.Identity, cmd.Add, cmd.Remove); applyErr != nil {
			log.Err(applyErr).Str("channel", channel).Str("identity", cmd.Identity.String()).Msg("flag change failed, stopping batch")
			break
		}
		run.Applied++
		lines = append(lines, fmt.Sprintf("Set /cs flags %s %s %s", cmd.Channel, cmd.Identity, cmd.Mode()))
	}

	switch {
	case applyErr == nil:
		run.Status = models.SyncStatusOK
	case run.Applied > 0:
		run.Status = models.SyncStatusPartial
		run.Error = applyErr.Error()
	default:
		run.Status = models.SyncStatusFailed
		run.Error = applyErr.Error()
	}

	report := s.finish(ctx, run, commands[:run.Applied], lines)
	if applyErr != nil {
		return report, fmt.Errorf("sync %s: applied %d of %d commands: %w", channel, run.Applied, run.Planned, applyErr)
	}
	return report, nil
}

// SyncAll implements ChannelSyncService. It syncs every configured
// channel, at most Concurrency at a time, and never aborts the batch:
// each channel's outcome lands in its own report.
func (s *channelSyncService) SyncAll(ctx context.Context) ([]models.SyncReport, error) {
	channels, err := config.ListChannels(s.channels.Dir)
	if err != nil {
		return nil, err
	}

	concurrency := s.syncCfg.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	reports := make([]models.SyncReport, len(channels))
	for i, channel := range channels {
		i, channel := i, channel
		g.Go(func() error {
			report, syncErr := s.SyncChannel(gctx, channel)
			if syncErr != nil {
				s.logger.Err(syncErr).Str("channel", channel).Msg("channel sync failed")
			}
			reports[i] = report
			return nil
		})
	}

	// Group errors are never returned from the workers; Wait only
	// propagates ctx cancellation ordering.
	_ = g.Wait()

	return reports, ctx.Err()
}

// plan loads the channel config, queries the live access list, and
// reconciles the two into a command sequence.
func (s *channelSyncService) plan(ctx context.Context, channel string) ([]models.MutationCommand, error) {
	channelCfg, err := config.LoadChannel(s.channels.Dir, channel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrChannelNotConfigured, channel)
		}
		return nil, err
	}

	if err := channelCfg.Validate(s.botAccount); err != nil {
		return nil, fmt.Errorf("invalid config for %s: %w", channel, err)
	}

	desired, err := channelCfg.DesiredSnapshot()
	if err != nil {
		return nil, fmt.Errorf("desired state for %s: %w", channel, err)
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.syncCfg.QueryTimeout.Or(config.DefaultQueryTimeout))
	defer cancel()

	observed, err := s.transport.QueryAccessList(queryCtx, channel)
	if err != nil {
		return nil, err
	}

	prune := s.syncCfg.Prune()
	if channelCfg.PruneMissing != nil {
		prune = *channelCfg.PruneMissing
	}

	return s.reconciler.Reconcile(ctx, desired, observed, prune)
}

// finish stamps the run, records it, fires the failure notification
// when warranted, and assembles the report.
func (s *channelSyncService) finish(ctx context.Context, run models.SyncRun, applied []models.MutationCommand, lines []string) models.SyncReport {
	run.FinishedAt = time.Now().UTC()
	report := models.SyncReport{Run: run, Lines: lines}

	s.record(ctx, run, applied)

	if s.notifier != nil && (run.Status == models.SyncStatusFailed || run.Status == models.SyncStatusPartial) {
		if err := s.notifier.Notify(ctx, report); err != nil {
			s.logger.Warn().Err(err).Str("channel", run.Channel).Msg("failure notification not delivered")
		}
	}

	return report
}

func (s *channelSyncService) record(ctx context.Context, run models.SyncRun, applied []models.MutationCommand) {
	if s.runs == nil {
		return
	}

	records := make([]models.SyncCommandRecord, 0, len(applied))
	for i, cmd := range applied {
		records = append(records, models.SyncCommandRecord{
			RunID:    run.ID,
			Position: i,
			Identity: cmd.Identity.String(),
			Mode:     cmd.Mode(),
		})
	}

	if err := s.runs.SaveRun(ctx, run, records); err != nil {
		// Recording is best effort; the sync outcome stands regardless.
		s.logger.Warn().Err(err).Str("run_id", run.ID).Str("channel", run.Channel).Msg("sync run not recorded")
	}
}

func (s *channelSyncService) acquire(channel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing[channel] {
		return false
	}
	s.syncing[channel] = true
	return true
}

func (s *channelSyncService) release(channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.syncing, channel)
}
