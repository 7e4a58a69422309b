// SPDX-License-Identifier: Apache-2.0

package models

import "fmt"

// MutationCommand is one abstract flag-change instruction produced by
// the reconciler and consumed exactly once by the transport layer: "for
// this identity on this channel, add these flags and remove those". At
// least one of Add/Remove is always non-empty — the reconciler never
// emits a command for an unchanged identity.
type MutationCommand struct {
	Channel  string
	Identity Identity
	Add      FlagSet
	Remove   FlagSet
}

// Mode renders the flag-change text in the form the service accepts:
// "+<addFlags>-<removeFlags>", each section in canonical flag order and
// omitted entirely when its set is empty.
func (c MutationCommand) Mode() string {
	mode := ""
	if !c.Add.Empty() {
		mode += "+" + c.Add.String()
	}
	if !c.Remove.Empty() {
		mode += "-" + c.Remove.String()
	}
	return mode
}

// String renders the collaborator-facing form
// "<channel> <identity> <mode>".
func (c MutationCommand) String() string {
	return fmt.Sprintf("%s %s %s", c.Channel, c.Identity, c.Mode())
}
