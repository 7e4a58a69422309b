package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/logger"
)

type Storages struct {
	SyncRunRepository SyncRunRepository

	db *DB
}

// NewStorages opens the sync-history database selected by cfg.DSN and
// runs pending migrations. A "postgres://" DSN connects via pgx,
// anything else is treated as a SQLite file path. An empty DSN disables
// persistence: the returned Storages carries a nil repository and
// callers skip recording.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	if cfg.DSN == "" {
		log.Info().Msg("sync history persistence disabled")
		return &Storages{}, nil
	}

	var (
		db  *DB
		err error
	)
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		db, err = NewConnectPostgres(ctx, cfg, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating sync history database: %w", err)
	}

	return &Storages{
		SyncRunRepository: NewSyncRunRepository(db, log),
		db:                db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
