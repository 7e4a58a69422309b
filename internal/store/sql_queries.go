package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mwbots/ircservserv/models"
)

// Queries are built with squirrel using $N placeholders, which both the
// pgx and the mattn/go-sqlite3 drivers accept, so one set of builders
// serves either backend.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var runColumns = []string{"id", "channel", "status", "planned", "applied", "error", "started_at", "finished_at"}

func buildInsertRunQuery(run models.SyncRun) (string, []any, error) {
	return builder.Insert("sync_runs").
		Columns(runColumns...).
		Values(run.ID, run.Channel, string(run.Status), run.Planned, run.Applied, run.Error, run.StartedAt, run.FinishedAt).
		ToSql()
}

func buildInsertCommandQuery(cmd models.SyncCommandRecord) (string, []any, error) {
	return builder.Insert("sync_commands").
		Columns("run_id", "position", "identity", "mode").
		Values(cmd.RunID, cmd.Position, cmd.Identity, cmd.Mode).
		ToSql()
}

// buildListRunsQuery dynamically builds the run-history SELECT from the
// optional filter fields.
func buildListRunsQuery(filter RunFilter) (string, []any, error) {
	q := builder.Select(runColumns...).
		From("sync_runs").
		OrderBy("started_at DESC")

	if filter.Channel != "" {
		q = q.Where(sq.Eq{"channel": filter.Channel})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	return q.ToSql()
}

func buildGetRunQuery(id string) (string, []any, error) {
	return builder.Select(runColumns...).
		From("sync_runs").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildRunCommandsQuery(runID string) (string, []any, error) {
	return builder.Select("run_id", "position", "identity", "mode").
		From("sync_commands").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("position ASC").
		ToSql()
}
