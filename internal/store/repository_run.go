package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/models"
)

// syncRunRepository is the SQL-backed implementation of
// [SyncRunRepository]. It writes the run audit trail to the "sync_runs"
// and "sync_commands" tables using the embedded [*DB] connection.
//
// All methods obtain a context-scoped logger via [logger.FromContext]
// for structured tracing of database interactions.
type syncRunRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncRunRepository constructs a [SyncRunRepository] backed by the
// provided database connection and logger.
func NewSyncRunRepository(db *DB, logger *logger.Logger) SyncRunRepository {
	logger.Debug().Msg("creating sync run repository")
	return &syncRunRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveRun implements SyncRunRepository.
//
// A run without commands is a single INSERT. A run with commands opens
// a transaction so the run row and its command rows land atomically.
//
// Error handling:
//   - unique_violation (23505) → [ErrDuplicateRun].
//   - zero affected rows → [ErrRunNotSaved].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *syncRunRepository) SaveRun(ctx context.Context, run models.SyncRun, commands []models.SyncCommandRecord) error {
	log := logger.FromContext(ctx)

	runQuery, runArgs, err := buildInsertRunQuery(run)
	if err != nil {
		log.Err(err).Str("func", "syncRunRepository.SaveRun").Str("run_id", run.ID).Msg("failed to build insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if len(commands) == 0 {
		result, execErr := r.DB.ExecContext(ctx, runQuery, runArgs...)
		if execErr != nil {
			return r.classifyInsertError(ctx, run.ID, execErr)
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			log.Error().Str("func", "syncRunRepository.SaveRun").Str("run_id", run.ID).Msg("sync run was not saved")
			return ErrRunNotSaved
		}
		return nil
	}

	// begin transaction
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "syncRunRepository.SaveRun").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, runQuery, runArgs...); err != nil {
		return r.classifyInsertError(ctx, run.ID, err)
	}

	for idx, cmd := range commands {
		cmdQuery, cmdArgs, buildErr := buildInsertCommandQuery(cmd)
		if buildErr != nil {
			log.Err(buildErr).Str("func", "syncRunRepository.SaveRun").Int("position", idx).Msg("failed to build command insert query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, execErr := tx.ExecContext(ctx, cmdQuery, cmdArgs...); execErr != nil {
			log.Err(execErr).Str("func", "syncRunRepository.SaveRun").Int("position", idx).Msg("error inserting sync command record")
			return fmt.Errorf("unexpected DB error: %w", execErr)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "syncRunRepository.SaveRun").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return nil
}

// ListRuns implements SyncRunRepository.
func (r *syncRunRepository) ListRuns(ctx context.Context, filter RunFilter) ([]models.SyncRun, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRunsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "syncRunRepository.ListRuns").Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "syncRunRepository.ListRuns").Str("channel", filter.Channel).Msg("failed to execute query for listing sync runs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	runs := make([]models.SyncRun, 0, 20)

	for rows.Next() {
		run, scanErr := scanRun(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "syncRunRepository.ListRuns").Msg("failed to scan sync run row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "syncRunRepository.ListRuns").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return runs, nil
}

// GetRun implements SyncRunRepository.
func (r *syncRunRepository) GetRun(ctx context.Context, id string) (models.SyncRun, []models.SyncCommandRecord, error) {
	log := logger.FromContext(ctx)

	runQuery, runArgs, err := buildGetRunQuery(id)
	if err != nil {
		return models.SyncRun{}, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	run, err := scanRun(r.DB.QueryRowContext(ctx, runQuery, runArgs...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncRun{}, nil, ErrRunNotFound
		}
		log.Err(err).Str("func", "syncRunRepository.GetRun").Str("run_id", id).Msg("failed to scan sync run row")
		return models.SyncRun{}, nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	cmdQuery, cmdArgs, err := buildRunCommandsQuery(id)
	if err != nil {
		return models.SyncRun{}, nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, cmdQuery, cmdArgs...)
	if err != nil {
		log.Err(err).Str("func", "syncRunRepository.GetRun").Str("run_id", id).Msg("failed to execute query for run commands")
		return models.SyncRun{}, nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var commands []models.SyncCommandRecord
	for rows.Next() {
		var cmd models.SyncCommandRecord
		if scanErr := rows.Scan(&cmd.RunID, &cmd.Position, &cmd.Identity, &cmd.Mode); scanErr != nil {
			return models.SyncRun{}, nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		commands = append(commands, cmd)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return models.SyncRun{}, nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return run, commands, nil
}

func (r *syncRunRepository) classifyInsertError(ctx context.Context, runID string, err error) error {
	log := logger.FromContext(ctx)
	log.Err(err).Str("func", "syncRunRepository.SaveRun").Str("run_id", runID).Msg("error inserting sync run")

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrDuplicateRun
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

// scanRun scans one sync_runs row through the given Scan function so
// QueryRow and Rows share a column list.
func scanRun(scan func(dest ...any) error) (models.SyncRun, error) {
	var (
		run    models.SyncRun
		status string
	)
	err := scan(&run.ID, &run.Channel, &status, &run.Planned, &run.Applied, &run.Error, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		return models.SyncRun{}, err
	}
	run.Status = models.SyncStatus(status)
	return run, nil
}
