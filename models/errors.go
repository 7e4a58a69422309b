// SPDX-License-Identifier: Apache-2.0

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyIdentity indicates an access-list entry that is empty
	// after whitespace trimming.
	ErrEmptyIdentity = errors.New("empty identity")
	// ErrEmptyCommand indicates an attempt to build a mutation command
	// with neither flags to add nor flags to remove.
	ErrEmptyCommand = errors.New("mutation command with no flag changes")
)

// InvalidFlagError is returned during snapshot construction when a flag
// letter outside [Alphabet] is encountered. It is fatal to that
// channel's sync: the reconciler only ever operates on validated sets.
type InvalidFlagError struct {
	// Flag is the offending letter.
	Flag Flag
	// Input is the raw flag string the letter was found in.
	Input string
	// Identity names the access-list entry the flags belong to, when
	// known at the point the error is raised.
	Identity string
}

func (e *InvalidFlagError) Error() string {
	if e.Identity != "" {
		return fmt.Sprintf("invalid flag %q in %q for identity %q", string(e.Flag), e.Input, e.Identity)
	}
	return fmt.Sprintf("invalid flag %q in %q", string(e.Flag), e.Input)
}

// DuplicateIdentityError is returned when one snapshot source lists the
// same identity twice. The sync of that channel is aborted rather than
// guessing which entry wins.
type DuplicateIdentityError struct {
	Channel  string
	Identity string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate identity %q in snapshot for %s", e.Identity, e.Channel)
}
