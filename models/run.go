// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// SyncStatus classifies the outcome of one channel sync run.
type SyncStatus string

const (
	// SyncStatusNoop — the reconciler produced an empty plan; nothing
	// was sent to the service.
	SyncStatusNoop SyncStatus = "noop"
	// SyncStatusOK — every command in the plan was applied.
	SyncStatusOK SyncStatus = "ok"
	// SyncStatusPartial — a command failed after earlier commands in
	// the same batch had already been applied; the remainder of the
	// batch was skipped and the channel is left part-reconciled until
	// the next run.
	SyncStatusPartial SyncStatus = "partial"
	// SyncStatusFailed — the sync aborted before any command was
	// issued (config error, snapshot error, or live query failure).
	SyncStatusFailed SyncStatus = "failed"
)

// SyncRun is the persisted audit record of one reconciliation attempt
// for one channel.
type SyncRun struct {
	ID         string     `json:"id"`
	Channel    string     `json:"channel"`
	Status     SyncStatus `json:"status"`
	Planned    int        `json:"planned"`
	Applied    int        `json:"applied"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

// SyncCommandRecord is the persisted form of one applied (or attempted)
// mutation command within a run. Position preserves the deterministic
// order the reconciler emitted.
type SyncCommandRecord struct {
	RunID    string `json:"run_id"`
	Position int    `json:"position"`
	Identity string `json:"identity"`
	Mode     string `json:"mode"`
}

// SyncReport is the human-facing outcome of one channel sync: the lines
// the bot echoes back to the channel that asked for the sync, in order,
// plus the run record for machine consumers (HTTP API, webhook).
type SyncReport struct {
	Run   SyncRun  `json:"run"`
	Lines []string `json:"lines"`
}
