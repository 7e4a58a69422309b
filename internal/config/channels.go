// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mwbots/ircservserv/models"
)

// channelsSubdir is where per-channel files live inside the config
// repository checkout.
const channelsSubdir = "channels"

// ChannelFile maps a channel name to its file inside the config
// repository: "#wikimedia-tech" → "channels/wikimedia-tech.toml".
func ChannelFile(channel string) string {
	return filepath.Join(channelsSubdir, strings.TrimPrefix(channel, "#")+".toml")
}

// FileChannel is the inverse of [ChannelFile]: it maps a repository
// path to a channel name, or returns false for paths that are not
// channel config files (README, CI config, and so on).
func FileChannel(path string) (string, bool) {
	if filepath.Dir(path) != channelsSubdir || !strings.HasSuffix(path, ".toml") {
		return "", false
	}
	name := strings.TrimSuffix(filepath.Base(path), ".toml")
	if name == "" {
		return "", false
	}
	return "#" + name, true
}

// LoadChannel reads and parses the declarative config for one channel
// from the repository checkout at dir. Unknown keys are rejected, same
// as for the bot config file.
func LoadChannel(dir, channel string) (models.ChannelConfig, error) {
	path := filepath.Join(dir, ChannelFile(channel))

	var cfg models.ChannelConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return models.ChannelConfig{}, fmt.Errorf("error parsing channel config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return models.ChannelConfig{}, fmt.Errorf("%w: unknown key %q in %s", ErrUnknownConfigKey, undecoded[0].String(), path)
	}

	cfg.Channel = channel
	return cfg, nil
}

// ListChannels returns every channel that has a config file in the
// repository checkout at dir, sorted for deterministic sync order.
func ListChannels(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, channelsSubdir))
	if err != nil {
		return nil, fmt.Errorf("error listing channel configs: %w", err)
	}

	channels := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if channel, ok := FileChannel(filepath.Join(channelsSubdir, entry.Name())); ok {
			channels = append(channels, channel)
		}
	}

	sort.Strings(channels)
	return channels, nil
}
