package service

import (
	"context"
	"sort"

	"github.com/mwbots/ircservserv/models"
)

// reconcileService is the concrete implementation of ReconcileService.
// It performs a purely in-memory comparison of two snapshots; no
// storage layer or logger is required because the operation is
// stateless and produces no side effects.
type reconcileService struct{}

// NewReconcileService constructs a ReconcileService ready for use.
// Because Reconcile is a stateless, in-memory operation, no
// dependencies (transport, config, logger) are needed.
func NewReconcileService() ReconcileService {
	return &reconcileService{}
}

// Reconcile implements ReconcileService.
//
// It makes two linear passes over the snapshots, classifying every
// identity into exactly one command (or none):
//
//   - Pass 1 (over desired): identities the config wants. Flags present
//     in desired but not observed are added, flags present in observed
//     but not desired are removed, and both edges can land in a single
//     command. Identities whose flags already match produce nothing.
//   - Pass 2 (over observed): identities holding live flags without any
//     config entry. When pruneMissing is set their entire flag set is
//     revoked; otherwise they are left untouched.
//
// The result is ordered by the identity total order, so equal inputs
// always yield byte-identical command sequences. Applying the result to
// observed yields desired exactly (under pruneMissing); reconciling
// again afterwards yields an empty plan.
//
// ctx cancellation is checked at the start of each iteration so that
// callers can abort early when operating on large access lists.
func (s *reconcileService) Reconcile(
	ctx context.Context,
	desired, observed models.Snapshot,
	pruneMissing bool,
) ([]models.MutationCommand, error) {
	var commands []models.MutationCommand
	channel := desired.Channel()

	// ── Pass 1: iterate over configured identities ─────────────────────
	for _, id := range desired.Identities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		want, _ := desired.Get(id)
		have, _ := observed.Get(id) // zero set when the identity holds no flags

		add := want.Diff(have)
		remove := have.Diff(want)
		if add.Empty() && remove.Empty() {
			// Already in sync, no command.
			continue
		}

		commands = append(commands, models.MutationCommand{
			Channel:  channel,
			Identity: id,
			Add:      add,
			Remove:   remove,
		})
	}

	// ── Pass 2: find unconfigured identities holding live flags ────────
	for _, id := range observed.Identities() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, configured := desired.Get(id); configured {
			// Already handled in pass 1.
			continue
		}
		if !pruneMissing {
			// Prune disabled: manually granted flags survive the sync.
			continue
		}

		have, _ := observed.Get(id)
		if have.Empty() {
			continue
		}

		commands = append(commands, models.MutationCommand{
			Channel:  channel,
			Identity: id,
			Remove:   have,
		})
	}

	// Both passes walk sorted identity lists, but pass 2 entries can
	// interleave with pass 1 entries in identity order.
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Identity.Less(commands[j].Identity)
	})

	return commands, nil
}
