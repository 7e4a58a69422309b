// SPDX-License-Identifier: Apache-2.0

package models

import (
	"math/bits"
	"strings"
)

// Alphabet is the full set of flag letters recognized by the channel
// management service, uppercase block first, each block in ascending
// ASCII order. Uppercase and lowercase letters are distinct flags
// (e.g. `V` is auto-voice for everyone, `v` is voice for one account).
//
// The position of a letter in Alphabet is its bit index inside
// [FlagSet], so the string must stay sorted: iterating indexes in
// order is what makes [FlagSet.String] canonical.
const Alphabet = "ABFHORSVbefhioqrstv"

// Flag is a single permission letter drawn from [Alphabet].
type Flag byte

// Valid reports whether the flag letter is part of [Alphabet].
func (f Flag) Valid() bool {
	return strings.IndexByte(Alphabet, byte(f)) >= 0
}

// FlagSet is an immutable set of permission flags for one identity on
// one channel. The zero value is the empty set. Because it is a plain
// bitset over [Alphabet], FlagSet is comparable with == and cheap to
// copy; all operations return new values.
type FlagSet struct {
	bits uint32
}

// ParseFlagSet builds a FlagSet from its wire form, e.g. "+AFRefiorstv"
// or "Aiotv". A single leading '+' is accepted and ignored. Any letter
// outside [Alphabet] makes the whole parse fail with [InvalidFlagError];
// flag validation happens here, at the snapshot boundary, so the
// reconciler never sees an invalid flag.
func ParseFlagSet(raw string) (FlagSet, error) {
	var set FlagSet
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '+' && i == 0 {
			continue
		}
		idx := strings.IndexByte(Alphabet, c)
		if idx < 0 {
			return FlagSet{}, &InvalidFlagError{Flag: Flag(c), Input: raw}
		}
		set.bits |= 1 << uint(idx)
	}
	return set, nil
}

// MustFlagSet is ParseFlagSet for compile-time constant inputs such as
// the role templates. It panics on invalid input.
func MustFlagSet(raw string) FlagSet {
	set, err := ParseFlagSet(raw)
	if err != nil {
		panic(err)
	}
	return set
}

// Union returns the set of flags present in either set.
func (f FlagSet) Union(other FlagSet) FlagSet {
	return FlagSet{bits: f.bits | other.bits}
}

// Diff returns the set of flags present in f but not in other.
func (f FlagSet) Diff(other FlagSet) FlagSet {
	return FlagSet{bits: f.bits &^ other.bits}
}

// Equal reports whether both sets hold exactly the same flags.
func (f FlagSet) Equal(other FlagSet) bool {
	return f.bits == other.bits
}

// Empty reports whether the set holds no flags.
func (f FlagSet) Empty() bool {
	return f.bits == 0
}

// Len returns the number of flags in the set.
func (f FlagSet) Len() int {
	return bits.OnesCount32(f.bits)
}

// Has reports whether the given flag letter is in the set.
func (f FlagSet) Has(flag Flag) bool {
	idx := strings.IndexByte(Alphabet, byte(flag))
	return idx >= 0 && f.bits&(1<<uint(idx)) != 0
}

// String returns the canonical serialization of the set: all uppercase
// flags in ascending order followed by all lowercase flags in ascending
// order, no separator (e.g. "AFRefiorstv"). The ordering falls out of
// [Alphabet] being ASCII-sorted.
func (f FlagSet) String() string {
	var sb strings.Builder
	for i := 0; i < len(Alphabet); i++ {
		if f.bits&(1<<uint(i)) != 0 {
			sb.WriteByte(Alphabet[i])
		}
	}
	return sb.String()
}
