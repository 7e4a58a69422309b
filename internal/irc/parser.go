// SPDX-License-Identifier: Apache-2.0

package irc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwbots/ircservserv/models"
)

// flagsEntryRE matches one entry of an Atheme `flags` listing, e.g.
//
//	1        legoktm                +AFRefiorstv         (FOUNDER) [modified 9s ago]
//
// Group 2 is the identity (account or hostmask), group 3 the flag
// letters after the leading plus.
var flagsEntryRE = regexp.MustCompile(`^(\d+)\s+(\S+)\s+\+([A-Za-z]+)`)

// accessListParser accumulates ChanServ NOTICE lines into an observed
// snapshot. Feed lines until it reports done; decorative header and
// separator lines are skipped, anything else that does not parse fails
// the whole listing so a half-read snapshot is never acted on.
type accessListParser struct {
	channel string
	builder *models.SnapshotBuilder
	done    bool
	err     error
}

func newAccessListParser(channel string) *accessListParser {
	return &accessListParser{
		channel: channel,
		builder: models.NewSnapshotBuilder(channel),
	}
}

// Feed consumes one NOTICE line and reports whether the listing is
// complete. Lines after completion are ignored.
func (p *accessListParser) Feed(line string) bool {
	if p.done {
		return true
	}

	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case strings.HasPrefix(line, "-"):
		// Column separator row.
		return false
	case strings.HasPrefix(line, "Entry"):
		// Column header row.
		return false
	case strings.HasPrefix(line, "End of"):
		p.done = true
		return true
	}

	match := flagsEntryRE.FindStringSubmatch(line)
	if match == nil {
		p.fail(fmt.Errorf("unparseable access list line for %s: %q", p.channel, line))
		return true
	}

	if err := p.builder.Add(match[2], "+"+match[3]); err != nil {
		p.fail(fmt.Errorf("access list entry for %s: %w", p.channel, err))
		return true
	}
	return false
}

func (p *accessListParser) fail(err error) {
	p.done = true
	p.err = err
}

// Snapshot returns the parsed listing. Valid only after Feed reported
// completion.
func (p *accessListParser) Snapshot() (models.Snapshot, error) {
	if p.err != nil {
		return models.Snapshot{}, p.err
	}
	return p.builder.Snapshot(), nil
}
