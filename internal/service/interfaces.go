package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/mwbots/ircservserv/models"
)

// ReconcileService computes the mutation plan that turns an observed
// access list into the desired one.
type ReconcileService interface {
	// Reconcile diffs desired against observed and returns the minimal
	// command sequence, sorted by identity. pruneMissing controls
	// whether identities absent from desired have their live flags
	// revoked.
	Reconcile(ctx context.Context, desired, observed models.Snapshot, pruneMissing bool) ([]models.MutationCommand, error)
}

// ChannelSyncService orchestrates full channel syncs: config load,
// live query, reconciliation, and command application.
type ChannelSyncService interface {
	SyncChannel(ctx context.Context, channel string) (models.SyncReport, error)
	SyncAll(ctx context.Context) ([]models.SyncReport, error)
}

// Notifier delivers a finished sync report to an external sink.
// Implementations live in the adapter package.
type Notifier interface {
	Notify(ctx context.Context, report models.SyncReport) error
}
