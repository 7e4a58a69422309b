// SPDX-License-Identifier: Apache-2.0

package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagSet(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "empty", raw: "", want: ""},
		{name: "bare plus", raw: "+", want: ""},
		{name: "founder set with leading plus", raw: "+AFRefiorstv", want: "AFRefiorstv"},
		{name: "no leading plus", raw: "Aiotv", want: "Aiotv"},
		{name: "unsorted input is canonicalized", raw: "vAfFR", want: "AFRfv"},
		{name: "duplicates collapse", raw: "oooo", want: "o"},
		{name: "autovoice keeps case distinction", raw: "+Vv", want: "Vv"},
		{name: "invalid letter", raw: "+Axz", wantErr: true},
		{name: "digit", raw: "+o1", wantErr: true},
		{name: "plus not in front", raw: "o+v", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseFlagSet(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *InvalidFlagError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.raw, invalid.Input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.String())
		})
	}
}

// TestFlagSet_CanonicalOrder pins the serialization convention:
// uppercase flags sorted first, then lowercase flags sorted, no
// separator.
func TestFlagSet_CanonicalOrder(t *testing.T) {
	set := MustFlagSet("vAfFR")
	assert.Equal(t, "AFRfv", set.String())
}

func TestFlagSet_SetOperations(t *testing.T) {
	observed := MustFlagSet("AFo")
	desired := MustFlagSet("Aiot")

	assert.Equal(t, "it", desired.Diff(observed).String())
	assert.Equal(t, "F", observed.Diff(desired).String())
	assert.Equal(t, "AFiot", desired.Union(observed).String())

	assert.True(t, observed.Equal(MustFlagSet("oFA")))
	assert.False(t, observed.Equal(desired))

	assert.True(t, FlagSet{}.Empty())
	assert.False(t, observed.Empty())
	assert.Equal(t, 3, observed.Len())

	assert.True(t, observed.Has('F'))
	assert.False(t, observed.Has('f'))
	assert.False(t, observed.Has('x'))
}

func TestFlagSet_Comparable(t *testing.T) {
	// FlagSet is a bitset, so == must agree with Equal; snapshots rely
	// on this when used as map values.
	assert.True(t, MustFlagSet("Vv") == MustFlagSet("vV"))
}

func TestFlag_Valid(t *testing.T) {
	assert.True(t, Flag('A').Valid())
	assert.True(t, Flag('v').Valid())
	assert.False(t, Flag('x').Valid())
	assert.False(t, Flag('+').Valid())
}

func TestMustFlagSet_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustFlagSet("+Az") })
}

func TestInvalidFlagError_Message(t *testing.T) {
	_, err := ParseFlagSet("+Ax")
	require.Error(t, err)

	var invalid *InvalidFlagError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Error(), `"x"`)

	invalid.Identity = "quiddity"
	assert.Contains(t, invalid.Error(), "quiddity")
}
