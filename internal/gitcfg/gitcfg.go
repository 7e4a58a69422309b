// SPDX-License-Identifier: Apache-2.0

// Package gitcfg updates the channel-config repository checkout via the
// git binary and reports which channels a pull touched.
package gitcfg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/mwbots/ircservserv/internal/config"
	"github.com/mwbots/ircservserv/internal/logger"
)

// gitRunner executes one git command inside dir and returns its stdout.
// Swappable in tests.
type gitRunner func(ctx context.Context, dir string, args ...string) (string, error)

// Repo is a channel-config repository checkout the bot can update.
type Repo struct {
	dir    string
	branch string
	logger *logger.Logger
	run    gitRunner
}

func NewRepo(cfg config.Channels, logger *logger.Logger) *Repo {
	branch := cfg.Branch
	if branch == "" {
		branch = config.DefaultBranch
	}

	return &Repo{
		dir:    cfg.Dir,
		branch: branch,
		logger: logger,
		run:    runGit,
	}
}

// Pull fetches remote updates, records which channel configs changed
// between HEAD and the remote branch, then fast-forwards the checkout.
// The returned channels are sorted and deduplicated.
//
// A commit merged between the fetch and the pull is picked up by the
// next pull, so its channels are reported late rather than lost.
func (r *Repo) Pull(ctx context.Context) ([]string, error) {
	if _, err := r.run(ctx, r.dir, "fetch"); err != nil {
		return nil, err
	}

	out, err := r.run(ctx, r.dir, "diff", "--name-only", "HEAD..origin/"+r.branch)
	if err != nil {
		return nil, err
	}
	changed := ChangedChannels(strings.Split(out, "\n"))

	if _, err := r.run(ctx, r.dir, "pull", "--ff-only"); err != nil {
		return nil, err
	}

	r.logger.Info().Strs("channels", changed).Msg("pulled channel config repository")
	return changed, nil
}

// ChangedChannels maps repository paths to the channels they configure,
// ignoring anything that is not a channel config file.
func ChangedChannels(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	channels := make([]string, 0, len(paths))
	for _, path := range paths {
		channel, ok := config.FileChannel(strings.TrimSpace(path))
		if !ok {
			continue
		}
		if _, dup := seen[channel]; dup {
			continue
		}
		seen[channel] = struct{}{}
		channels = append(channels, channel)
	}

	sort.Strings(channels)
	return channels
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
