// SPDX-License-Identifier: Apache-2.0

package models

import "strings"

// IdentityKind discriminates the two forms an access-list entry can
// take: a registered services account or a hostmask pattern.
type IdentityKind int

const (
	// IdentityAccount is a registered account name (e.g. "quiddity").
	IdentityAccount IdentityKind = iota
	// IdentityMask is a hostmask or extban pattern
	// (e.g. "*!*@libera/staff/*" or "$a:somebody").
	IdentityMask
)

// Identity is the normalized key of one access-list entry. Two
// identities are equal iff they have the same kind and the same
// normalized value, so Identity is usable directly as a map key.
type Identity struct {
	kind  IdentityKind
	value string
}

// ParseIdentity classifies and normalizes a raw config or wire entry.
//
// An entry containing '!', '@' or '*', or starting with '$' (extban
// syntax), is a mask and is preserved verbatim apart from whitespace
// trimming. Everything else is an account name, normalized to ASCII
// lowercase because services treat account names case-insensitively.
func ParseIdentity(raw string) (Identity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Identity{}, ErrEmptyIdentity
	}
	if strings.ContainsAny(trimmed, "!@*") || trimmed[0] == '$' {
		return Identity{kind: IdentityMask, value: trimmed}, nil
	}
	return Identity{kind: IdentityAccount, value: strings.ToLower(trimmed)}, nil
}

// AccountIdentity builds an account identity, applying the same
// normalization as [ParseIdentity].
func AccountIdentity(name string) Identity {
	return Identity{kind: IdentityAccount, value: strings.ToLower(strings.TrimSpace(name))}
}

// MaskIdentity builds a mask identity from a pattern kept verbatim
// apart from whitespace trimming.
func MaskIdentity(pattern string) Identity {
	return Identity{kind: IdentityMask, value: strings.TrimSpace(pattern)}
}

// Kind returns whether the identity is an account or a mask.
func (i Identity) Kind() IdentityKind {
	return i.kind
}

// String returns the normalized string representation, which is also
// the exact text sent on the wire in flag commands.
func (i Identity) String() string {
	return i.value
}

// Less defines the total order used for deterministic command output:
// plain lexicographic comparison of the normalized representations,
// with no precedence between accounts and masks.
func (i Identity) Less(other Identity) bool {
	return i.value < other.value
}
