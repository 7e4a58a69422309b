// SPDX-License-Identifier: Apache-2.0

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBuilder_Add(t *testing.T) {
	b := NewSnapshotBuilder("#wikimedia-tech")
	require.NoError(t, b.Add("quiddity", "+AFRefiorstv"))
	require.NoError(t, b.Add("*!*@libera/staff/*", "+o"))

	snap := b.Snapshot()
	assert.Equal(t, "#wikimedia-tech", snap.Channel())
	assert.Equal(t, 2, snap.Len())

	set, ok := snap.Get(AccountIdentity("quiddity"))
	require.True(t, ok)
	assert.Equal(t, "AFRefiorstv", set.String())

	_, ok = snap.Get(AccountIdentity("nobody"))
	assert.False(t, ok)
}

func TestSnapshotBuilder_DuplicateIdentity(t *testing.T) {
	b := NewSnapshotBuilder("#test")
	require.NoError(t, b.Add("quiddity", "+o"))

	// Normalization applies before the duplicate check, so a re-listing
	// under different case is still a duplicate.
	err := b.Add("Quiddity", "+v")
	require.Error(t, err)

	var dup *DuplicateIdentityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "#test", dup.Channel)
	assert.Equal(t, "quiddity", dup.Identity)
}

func TestSnapshotBuilder_InvalidFlagNamesIdentity(t *testing.T) {
	b := NewSnapshotBuilder("#test")
	err := b.Add("quiddity", "+Ax")
	require.Error(t, err)

	var invalid *InvalidFlagError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "quiddity", invalid.Identity)
	assert.Equal(t, Flag('x'), invalid.Flag)
}

func TestSnapshotBuilder_GrantUnions(t *testing.T) {
	b := NewSnapshotBuilder("#test")
	id := AccountIdentity("ashley")
	b.Grant(id, OpFlags)
	b.Grant(id, AutovoiceFlags)

	set, ok := b.Snapshot().Get(id)
	require.True(t, ok)
	assert.Equal(t, "AViotv", set.String())
}

func TestSnapshot_IdentitiesSorted(t *testing.T) {
	b := NewSnapshotBuilder("#test")
	require.NoError(t, b.Add("wmopbot", "+o"))
	require.NoError(t, b.Add("*!*@libera/staff/*", "+o"))
	require.NoError(t, b.Add("p858snake", "+Afiortv"))

	ids := b.Snapshot().Identities()
	got := make([]string, len(ids))
	for i, id := range ids {
		got[i] = id.String()
	}
	assert.Equal(t, []string{"*!*@libera/staff/*", "p858snake", "wmopbot"}, got)
}

func TestSnapshot_Apply(t *testing.T) {
	b := NewSnapshotBuilder("#test")
	require.NoError(t, b.Add("quiddity", "+AFo"))
	snap := b.Snapshot()

	next := snap.Apply(MutationCommand{
		Channel:  "#test",
		Identity: AccountIdentity("quiddity"),
		Add:      MustFlagSet("it"),
		Remove:   MustFlagSet("F"),
	})

	// The receiver is untouched.
	orig, _ := snap.Get(AccountIdentity("quiddity"))
	assert.Equal(t, "AFo", orig.String())

	set, ok := next.Get(AccountIdentity("quiddity"))
	require.True(t, ok)
	assert.Equal(t, "Aiot", set.String())

	// Removing every remaining flag drops the identity, the way the
	// service stops listing a zero-flag entry.
	gone := next.Apply(MutationCommand{
		Channel:  "#test",
		Identity: AccountIdentity("quiddity"),
		Remove:   MustFlagSet("Aiot"),
	})
	assert.Equal(t, 0, gone.Len())
}
