package store

import (
	"database/sql"

	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/migrations"
)

// DB wraps the shared connection pool together with the driver name it
// was opened with; migrations need the driver to pick the right goose
// dialect.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
