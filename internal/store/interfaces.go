package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/mwbots/ircservserv/models"
)

// RunFilter narrows [SyncRunRepository.ListRuns] results. Zero fields
// are ignored.
type RunFilter struct {
	Channel string
	Status  models.SyncStatus
	Limit   int
}

// SyncRunRepository persists the audit trail of reconciliation runs.
type SyncRunRepository interface {
	// SaveRun stores one finished run together with the commands that
	// were applied during it, atomically.
	SaveRun(ctx context.Context, run models.SyncRun, commands []models.SyncCommandRecord) error

	// ListRuns returns runs matching filter, newest first.
	ListRuns(ctx context.Context, filter RunFilter) ([]models.SyncRun, error)

	// GetRun returns one run and its recorded commands in emission order.
	GetRun(ctx context.Context, id string) (models.SyncRun, []models.SyncCommandRecord, error)
}
