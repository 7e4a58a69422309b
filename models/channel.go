// SPDX-License-Identifier: Apache-2.0

package models

import "fmt"

// Role flag templates. A role in the channel config expands to the full
// flag set the service should hold for every identity in that role;
// identities in several roles receive the union.
var (
	// FounderFlags is everything, including founder (+F) and
	// flag-changing (+f) rights.
	FounderFlags = MustFlagSet("+AFRefiorstv")
	// CratFlags is op rights plus recovery and invite rights, without
	// founder or flag-changing powers.
	CratFlags = MustFlagSet("+Afiortv")
	// OpFlags is day-to-day operator rights.
	OpFlags = MustFlagSet("+Aiotv")
	// PlusOFlags is op rights only (manual /cs op).
	PlusOFlags = MustFlagSet("+o")
	// AutovoiceFlags is voice plus auto-voice.
	AutovoiceFlags = MustFlagSet("+Vv")
	// WmopbotFlags is what the wmopbot convenience toggle grants: op
	// plus topic rights.
	WmopbotFlags = MustFlagSet("+ot")
)

// Identities granted by the boolean convenience toggles.
const (
	LiberaStaffMask = "*!*@libera/staff/*"
	LithargeAccount = "litharge"
	WmopbotAccount  = "wmopbot"
)

// MaxFounders bounds how many accounts may hold founder flags on one
// channel; the services side enforces a similar limit.
const MaxFounders = 4

// ChannelConfig is the declarative desired state for one channel, as
// loaded from `channels/<name>.toml` in the config repository. Role
// membership is expressed as sets of identities; the toggles grant
// fixed flags to well-known identities.
type ChannelConfig struct {
	Channel string `toml:"-"`

	Founders  []string `toml:"founders"`
	Crats     []string `toml:"crats"`
	Ops       []string `toml:"ops"`
	PlusO     []string `toml:"plus_o"`
	Autovoice []string `toml:"autovoice"`

	// LiberaStaff grants network staff and the litharge bot +o rights.
	LiberaStaff bool `toml:"libera_staff"`
	// Wmopbot grants wmopbot +ot rights.
	Wmopbot bool `toml:"wmopbot"`

	// PruneMissing overrides the bot-wide policy for identities that
	// hold flags on the live channel but are absent from this config:
	// true revokes everything they hold, false leaves them untouched.
	// Nil means use the bot default.
	PruneMissing *bool `toml:"prune_missing"`
}

// DesiredSnapshot expands the role sets and toggles into the desired
// [Snapshot] for the channel. Identity strings are parsed and
// normalized here, so a malformed entry fails the channel's sync before
// any live query is made.
func (c ChannelConfig) DesiredSnapshot() (Snapshot, error) {
	builder := NewSnapshotBuilder(c.Channel)

	roles := []struct {
		members []string
		flags   FlagSet
	}{
		{c.Founders, FounderFlags},
		{c.Crats, CratFlags},
		{c.Ops, OpFlags},
		{c.PlusO, PlusOFlags},
		{c.Autovoice, AutovoiceFlags},
	}
	for _, role := range roles {
		for _, raw := range role.members {
			id, err := ParseIdentity(raw)
			if err != nil {
				return Snapshot{}, fmt.Errorf("channel %s: %w", c.Channel, err)
			}
			builder.Grant(id, role.flags)
		}
	}

	if c.LiberaStaff {
		builder.Grant(MaskIdentity(LiberaStaffMask), PlusOFlags)
		builder.Grant(AccountIdentity(LithargeAccount), PlusOFlags)
	}
	if c.Wmopbot {
		builder.Grant(AccountIdentity(WmopbotAccount), WmopbotFlags)
	}

	return builder.Snapshot(), nil
}

// Validate enforces the repository-level rules checked both at load
// time and by the validate-config CI binary: at most [MaxFounders]
// founders, and the bot's own account listed among them so the bot
// keeps the rights it needs to manage the channel.
func (c ChannelConfig) Validate(botAccount string) error {
	if len(c.Founders) > MaxFounders {
		return fmt.Errorf("channel %s: can only have %d founders", c.Channel, MaxFounders)
	}
	if botAccount != "" {
		bot := AccountIdentity(botAccount)
		for _, raw := range c.Founders {
			if AccountIdentity(raw) == bot {
				return nil
			}
		}
		return fmt.Errorf("channel %s: %s must be listed as a founder", c.Channel, bot)
	}
	return nil
}
