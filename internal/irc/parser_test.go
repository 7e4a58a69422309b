// SPDX-License-Identifier: Apache-2.0

package irc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwbots/ircservserv/models"
)

// Transcript lines as Atheme actually sends them, including the
// decorative header and trailing metadata.
var flagsListing = []string{
	"Entry    Nickname/Host          Flags",
	"----- ---------------------- -----",
	"1        legoktm                +AFRefiorstv         (FOUNDER) [modified 9s ago, on Jan 01 00:00:00 2021 +0000]",
	"2        *!*@libera/staff/*     +Aiotv               [modified 2w 1d 5h ago]",
	"3        litharge               +Vv                  [modified 4w ago]",
	"4        ashley                 +Aiotv               [modified 1h 20m ago]",
	"End of #wikimedia-tech FLAGS listing.",
}

func TestAccessListParser(t *testing.T) {
	p := newAccessListParser("#wikimedia-tech")

	for i, line := range flagsListing {
		done := p.Feed(line)
		assert.Equal(t, i == len(flagsListing)-1, done, "line %d: %q", i, line)
	}

	snap, err := p.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, "#wikimedia-tech", snap.Channel())
	assert.Equal(t, 4, snap.Len())

	flags, ok := snap.Get(models.AccountIdentity("legoktm"))
	require.True(t, ok)
	assert.Equal(t, "AFRefiorstv", flags.String())

	flags, ok = snap.Get(models.MaskIdentity("*!*@libera/staff/*"))
	require.True(t, ok)
	assert.Equal(t, "Aiotv", flags.String())

	flags, ok = snap.Get(models.AccountIdentity("litharge"))
	require.True(t, ok)
	assert.Equal(t, "Vv", flags.String())
}

func TestAccessListParser_EmptyListing(t *testing.T) {
	p := newAccessListParser("#empty")

	assert.False(t, p.Feed("Entry    Nickname/Host          Flags"))
	assert.False(t, p.Feed("----- ---------------------- -----"))
	assert.True(t, p.Feed("End of #empty FLAGS listing."))

	snap, err := p.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}

func TestAccessListParser_UnparseableLine(t *testing.T) {
	p := newAccessListParser("#wikimedia-tech")

	assert.True(t, p.Feed("You are not authorized to perform this operation."))

	_, err := p.Snapshot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable")
}

func TestAccessListParser_InvalidFlag(t *testing.T) {
	p := newAccessListParser("#wikimedia-tech")

	// "x" is not part of the flag alphabet.
	assert.True(t, p.Feed("1        ashley                 +Axo                 [modified 1h ago]"))

	_, err := p.Snapshot()
	require.Error(t, err)

	var invalid *models.InvalidFlagError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, byte('x'), byte(invalid.Flag))
}

func TestAccessListParser_IgnoresLinesAfterEnd(t *testing.T) {
	p := newAccessListParser("#wikimedia-tech")

	assert.True(t, p.Feed("End of #wikimedia-tech FLAGS listing."))
	assert.True(t, p.Feed("1        ashley                 +Aiotv"))

	snap, err := p.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}
