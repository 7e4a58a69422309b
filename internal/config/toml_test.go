// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBotConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseTOML(t *testing.T) {
	path := writeBotConfig(t, `
owners = ["legok"]
trusted = ["quiddity"]

[irc]
server = "irc.libera.chat:6697"
nick = "ircservserv"
account = "ircservserv-wm"
password_file = "/run/secrets/irc-password"

[channels]
dir = "/srv/channel-config"

[sync]
schedule = "@every 6h"
prune_missing = false
query_timeout = "45s"

[server]
address = "127.0.0.1:8113"
request_timeout = "10s"

[storage]
dsn = "/var/lib/ircservserv/history.db"
`)

	cfg, err := parseTOML(path)
	require.NoError(t, err)

	assert.Equal(t, "irc.libera.chat:6697", cfg.IRC.Server)
	assert.Equal(t, "ircservserv", cfg.IRC.Nick)
	assert.Equal(t, "ircservserv-wm", cfg.IRC.Account)
	assert.Equal(t, "/run/secrets/irc-password", cfg.IRC.PasswordFile)
	assert.Equal(t, "/srv/channel-config", cfg.Channels.Dir)
	assert.Equal(t, "@every 6h", cfg.Sync.Schedule)
	require.NotNil(t, cfg.Sync.PruneMissing)
	assert.False(t, *cfg.Sync.PruneMissing)
	assert.Equal(t, 45*time.Second, cfg.Sync.QueryTimeout.Std())
	assert.Equal(t, "127.0.0.1:8113", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout.Std())
	assert.Equal(t, "/var/lib/ircservserv/history.db", cfg.Storage.DSN)
	assert.Equal(t, []string{"legok"}, cfg.Owners)
	assert.Equal(t, []string{"quiddity"}, cfg.Trusted)
}

func TestParseTOML_UnknownKey(t *testing.T) {
	path := writeBotConfig(t, `
[irc]
servre = "typo:6697"
`)

	_, err := parseTOML(path)
	require.ErrorIs(t, err, ErrUnknownConfigKey)
}

func TestParseTOML_BadDuration(t *testing.T) {
	path := writeBotConfig(t, `
[sync]
query_timeout = "six hours"
`)

	_, err := parseTOML(path)
	require.Error(t, err)
}

func TestDuration_Or(t *testing.T) {
	var unset Duration
	assert.Equal(t, 30*time.Second, unset.Or(30*time.Second))
	assert.Equal(t, time.Minute, Duration(time.Minute).Or(30*time.Second))
}
