// SPDX-License-Identifier: Apache-2.0

package models

import (
	"errors"
	"sort"
)

// Snapshot is a complete mapping from [Identity] to [FlagSet] for one
// channel at one point in time. A snapshot is built exactly once per
// sync attempt — from declarative config on the desired side, or from a
// parsed live access-list reply on the observed side — and is never
// mutated afterwards. The reconciler compares snapshots, it does not
// change them.
type Snapshot struct {
	channel string
	flags   map[Identity]FlagSet
}

// Channel returns the channel this snapshot is scoped to. Snapshots are
// only ever compared within the same channel.
func (s Snapshot) Channel() string {
	return s.channel
}

// Get returns the flag set for the given identity and whether the
// identity is present at all.
func (s Snapshot) Get(id Identity) (FlagSet, bool) {
	set, ok := s.flags[id]
	return set, ok
}

// Len returns the number of identities in the snapshot.
func (s Snapshot) Len() int {
	return len(s.flags)
}

// Identities returns every identity in the snapshot in the total order
// of [Identity.Less].
func (s Snapshot) Identities() []Identity {
	ids := make([]Identity, 0, len(s.flags))
	for id := range s.flags {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// Apply returns a new snapshot with one mutation command applied: the
// command's Add flags unioned in and its Remove flags taken out, the
// identity dropped entirely when nothing remains. The receiver is left
// untouched. Used to simulate the service applying a command, which is
// how the idempotence property is tested.
func (s Snapshot) Apply(cmd MutationCommand) Snapshot {
	next := make(map[Identity]FlagSet, len(s.flags)+1)
	for id, set := range s.flags {
		next[id] = set
	}
	set := next[cmd.Identity].Union(cmd.Add).Diff(cmd.Remove)
	if set.Empty() {
		delete(next, cmd.Identity)
	} else {
		next[cmd.Identity] = set
	}
	return Snapshot{channel: s.channel, flags: next}
}

// SnapshotBuilder accumulates validated entries for one channel and
// produces an immutable [Snapshot]. It is the single place where raw
// identity strings and flag strings are allowed in: parse errors,
// invalid flags and duplicate identities are all caught here, before
// the reconciler ever runs.
type SnapshotBuilder struct {
	channel string
	flags   map[Identity]FlagSet
}

// NewSnapshotBuilder creates an empty builder scoped to channel.
func NewSnapshotBuilder(channel string) *SnapshotBuilder {
	return &SnapshotBuilder{
		channel: channel,
		flags:   make(map[Identity]FlagSet),
	}
}

// Add parses one raw access-list entry (identity and flag string) and
// records it. Listing the same identity twice is a
// [DuplicateIdentityError] — the live reply and the config are both
// expected to name each identity once, and guessing which entry wins
// would be worse than failing that channel's sync.
func (b *SnapshotBuilder) Add(rawIdentity, rawFlags string) error {
	id, err := ParseIdentity(rawIdentity)
	if err != nil {
		return err
	}
	set, err := ParseFlagSet(rawFlags)
	if err != nil {
		var invalid *InvalidFlagError
		if errors.As(err, &invalid) {
			invalid.Identity = id.String()
		}
		return err
	}
	if _, exists := b.flags[id]; exists {
		return &DuplicateIdentityError{Channel: b.channel, Identity: id.String()}
	}
	b.flags[id] = set
	return nil
}

// Grant unions flags into an identity's entry instead of rejecting the
// repeat. This is the config-side entry point: one account listed under
// several roles legitimately receives the union of the role templates.
func (b *SnapshotBuilder) Grant(id Identity, set FlagSet) {
	b.flags[id] = b.flags[id].Union(set)
}

// Snapshot freezes the accumulated entries. The builder must not be
// used afterwards.
func (b *SnapshotBuilder) Snapshot() Snapshot {
	snap := Snapshot{channel: b.channel, flags: b.flags}
	b.flags = nil
	return snap
}
