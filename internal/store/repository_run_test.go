package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mwbots/ircservserv/internal/logger"
	"github.com/mwbots/ircservserv/models"
)

func newTestRunRepo(t *testing.T) (*syncRunRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &syncRunRepository{
		DB:     &DB{DB: db, driver: driverSQLite, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testRun() models.SyncRun {
	return models.SyncRun{
		ID:         "run-1",
		Channel:    "#wikimedia-tech",
		Status:     models.SyncStatusOK,
		Planned:    2,
		Applied:    2,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}
}

func TestSaveRun_NoCommands(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_runs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveRun(context.Background(), testRun(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveRun_WithCommands(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	commands := []models.SyncCommandRecord{
		{RunID: "run-1", Position: 0, Identity: "ashley", Mode: "+it"},
		{RunID: "run-1", Position: 1, Identity: "litharge", Mode: "+Vv"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sync_runs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sync_commands").
		WithArgs("run-1", 0, "ashley", "+it").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sync_commands").
		WithArgs("run-1", 1, "litharge", "+Vv").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SaveRun(context.Background(), testRun(), commands); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveRun_Duplicate(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_runs").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.SaveRun(context.Background(), testRun(), nil)
	if !errors.Is(err, ErrDuplicateRun) {
		t.Fatalf("expected ErrDuplicateRun, got %v", err)
	}
}

func TestSaveRun_ZeroRowsAffected(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_runs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveRun(context.Background(), testRun(), nil)
	if !errors.Is(err, ErrRunNotSaved) {
		t.Fatalf("expected ErrRunNotSaved, got %v", err)
	}
}

func TestSaveRun_CommandInsertError(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	commands := []models.SyncCommandRecord{
		{RunID: "run-1", Position: 0, Identity: "ashley", Mode: "+it"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sync_runs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sync_commands").
		WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	err := repo.SaveRun(context.Background(), testRun(), commands)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestListRuns_Success(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "channel", "status", "planned", "applied", "error", "started_at", "finished_at"}).
		AddRow("run-2", "#wikimedia-tech", "failed", 1, 0, "query timed out", now, now).
		AddRow("run-1", "#wikimedia-tech", "ok", 2, 2, "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM sync_runs").
		WithArgs("#wikimedia-tech").
		WillReturnRows(rows)

	runs, err := repo.ListRuns(context.Background(), RunFilter{Channel: "#wikimedia-tech"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Status != models.SyncStatusFailed {
		t.Errorf("expected failed status first, got %s", runs[0].Status)
	}
	if runs[1].Applied != 2 {
		t.Errorf("expected 2 applied, got %d", runs[1].Applied)
	}
}

func TestListRuns_QueryError(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sync_runs").
		WillReturnError(errors.New("db failure"))

	_, err := repo.ListRuns(context.Background(), RunFilter{})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestListRuns_ScanError(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow("run-1") // wrong shape

	mock.ExpectQuery("SELECT (.+) FROM sync_runs").
		WillReturnRows(rows)

	_, err := repo.ListRuns(context.Background(), RunFilter{})
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestGetRun_Success(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	now := time.Now()
	runRows := sqlmock.
		NewRows([]string{"id", "channel", "status", "planned", "applied", "error", "started_at", "finished_at"}).
		AddRow("run-1", "#wikimedia-tech", "ok", 1, 1, "", now, now)
	cmdRows := sqlmock.
		NewRows([]string{"run_id", "position", "identity", "mode"}).
		AddRow("run-1", 0, "ashley", "+it")

	mock.ExpectQuery("SELECT (.+) FROM sync_runs").
		WithArgs("run-1").
		WillReturnRows(runRows)
	mock.ExpectQuery("SELECT (.+) FROM sync_commands").
		WithArgs("run-1").
		WillReturnRows(cmdRows)

	run, commands, err := repo.GetRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Channel != "#wikimedia-tech" {
		t.Errorf("unexpected channel %s", run.Channel)
	}
	if len(commands) != 1 || commands[0].Mode != "+it" {
		t.Errorf("unexpected commands: %v", commands)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	repo, mock, db := newTestRunRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sync_runs").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
