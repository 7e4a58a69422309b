// Package irc implements the transport layer: one connection to the
// network, the ChanServ conversation that produces observed access-list
// snapshots, and the single-identity flag mutation primitive the sync
// orchestrator consumes.
package irc

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

import (
	"context"

	"github.com/mwbots/ircservserv/models"
)

// Transport is the contract the sync orchestrator requires from the
// services layer. Both operations may fail with a [TransientError]
// when the connection is down; retrying ApplyFlagChange is safe because
// reapplying the same add/remove set is a no-op on the service side.
type Transport interface {
	// QueryAccessList asks ChanServ for the current flags listing of
	// channel and returns it parsed into an observed snapshot.
	QueryAccessList(ctx context.Context, channel string) (models.Snapshot, error)

	// ApplyFlagChange issues one flag mutation for one identity.
	ApplyFlagChange(ctx context.Context, channel string, identity models.Identity, add, remove models.FlagSet) error
}

// Messenger sends chat messages; the bot uses it for command replies
// and sync report lines.
type Messenger interface {
	Privmsg(ctx context.Context, target, text string) error
}
