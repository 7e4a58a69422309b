// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// bot. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an
// optional TOML file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//   - toml      — key inside the TOML config file.
type StructuredConfig struct {
	// IRC holds the network connection and identity settings.
	IRC IRC `envPrefix:"IRC_" toml:"irc"`

	// Channels holds the location of the declarative channel-config
	// repository checkout.
	Channels Channels `envPrefix:"CHANNELS_" toml:"channels"`

	// Sync holds reconciliation policy and scheduling settings.
	Sync Sync `envPrefix:"SYNC_" toml:"sync"`

	// Server holds the HTTP admin listener settings.
	Server Server `envPrefix:"SERVER_" toml:"server"`

	// Storage holds the sync-history database settings.
	Storage Storage `envPrefix:"STORAGE_" toml:"storage"`

	// Webhook holds the optional outbound failure-notification settings.
	Webhook Webhook `envPrefix:"WEBHOOK_" toml:"webhook"`

	// Owners are services accounts allowed every chat command.
	// Env: OWNERS (comma-separated).
	Owners []string `env:"OWNERS" envSeparator:"," toml:"owners"`

	// Trusted are services accounts allowed the sync/pull commands.
	// Env: TRUSTED (comma-separated).
	Trusted []string `env:"TRUSTED" envSeparator:"," toml:"trusted"`

	// TOMLFilePath is the optional path to the bot's TOML config file.
	// When non-empty, the file is parsed and merged on top of the
	// values already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config
	// flag.
	TOMLFilePath string `env:"CONFIG" toml:"-"`
}

// IRC holds connection and identity settings for the network the bot
// manages channels on.
type IRC struct {
	// Server is the network address in "host:port" format
	// (e.g. "irc.libera.chat:6697").
	// Env: IRC_SERVER
	Server string `env:"SERVER" toml:"server"`

	// TLS enables a TLS connection to the server. Defaults to true;
	// plaintext is only for local test networks.
	// Env: IRC_TLS
	TLS *bool `env:"TLS" toml:"tls"`

	// Nick is the nickname the bot connects with.
	// Env: IRC_NICK
	Nick string `env:"NICK" toml:"nick"`

	// User is the username (ident) sent at registration. Defaults to
	// Nick when empty.
	// Env: IRC_USER
	User string `env:"USER" toml:"user"`

	// Realname is the gecos field sent at registration.
	// Env: IRC_REALNAME
	Realname string `env:"REALNAME" toml:"realname"`

	// Account is the services account the bot authenticates as (SASL
	// PLAIN). Channel configs must list this account as a founder.
	// Env: IRC_ACCOUNT
	Account string `env:"ACCOUNT" toml:"account"`

	// Password is the services account password. Prefer PasswordFile.
	// Env: IRC_PASSWORD
	Password string `env:"PASSWORD" toml:"password"`

	// PasswordFile, when set, is read at startup and its trimmed
	// contents replace Password, keeping the secret out of config
	// files and process environments.
	// Env: IRC_PASSWORD_FILE
	PasswordFile string `env:"PASSWORD_FILE" toml:"password_file"`

	// MessagesPerSecond is the sustained outgoing flood limit.
	// Env: IRC_MESSAGES_PER_SECOND
	MessagesPerSecond float64 `env:"MESSAGES_PER_SECOND" toml:"messages_per_second"`

	// Burst is the outgoing flood limiter's burst allowance.
	// Env: IRC_BURST
	Burst int `env:"BURST" toml:"burst"`
}

// Channels holds the location of the checked-out channel-config git
// repository. Per-channel files live at `<Dir>/channels/<name>.toml`.
type Channels struct {
	// Dir is the path to the config repository checkout.
	// Env: CHANNELS_DIR
	Dir string `env:"DIR" toml:"dir"`

	// Branch is the remote branch the pull command fast-forwards to.
	// Defaults to "master", matching the upstream config repository.
	// Env: CHANNELS_BRANCH
	Branch string `env:"BRANCH" toml:"branch"`
}

// Sync holds reconciliation policy and scheduling settings.
type Sync struct {
	// PruneMissing is the bot-wide default for identities holding live
	// flags while absent from the channel config: true revokes all
	// their flags, false leaves them untouched. Defaults to true (the
	// config repository is the single source of truth); individual
	// channels can override it.
	// Env: SYNC_PRUNE_MISSING
	PruneMissing *bool `env:"PRUNE_MISSING" toml:"prune_missing"`

	// Schedule is a cron expression for periodic full syncs (e.g.
	// "@every 6h"). Empty disables the periodic worker.
	// Env: SYNC_SCHEDULE
	Schedule string `env:"SCHEDULE" toml:"schedule"`

	// Concurrency bounds how many channels sync in parallel. Commands
	// within one channel are always sequential regardless.
	// Env: SYNC_CONCURRENCY
	Concurrency int `env:"CONCURRENCY" toml:"concurrency"`

	// QueryTimeout bounds one access-list query round-trip.
	// Env: SYNC_QUERY_TIMEOUT
	QueryTimeout Duration `env:"QUERY_TIMEOUT" toml:"query_timeout"`
}

// Server holds the HTTP admin listener settings.
type Server struct {
	// HTTPAddress is the TCP address the admin/API server listens on,
	// in "host:port" format. Empty disables the HTTP surface.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" toml:"address"`

	// RequestTimeout is the maximum duration allowed for one inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout Duration `env:"REQUEST_TIMEOUT" toml:"request_timeout"`
}

// Storage holds the sync-history database settings.
type Storage struct {
	// DSN selects and configures the database: a "postgres://" URI
	// opens PostgreSQL via pgx, anything else is treated as a SQLite
	// file path. Empty disables sync-history persistence.
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI" toml:"dsn"`
}

// Webhook holds the optional outbound failure-notification settings.
type Webhook struct {
	// URL receives a JSON sync report for every failed or partial run.
	// Empty disables notifications.
	// Env: WEBHOOK_URL
	URL string `env:"URL" toml:"url"`

	// Timeout bounds one notification request.
	// Env: WEBHOOK_TIMEOUT
	Timeout Duration `env:"TIMEOUT" toml:"timeout"`
}

// Defaults applied after merging when the corresponding field is unset.
const (
	DefaultBranch          = "master"
	DefaultConcurrency     = 4
	DefaultMessagesPerSec  = 2.0
	DefaultBurst           = 4
	DefaultQueryTimeout    = 30 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultWebhookTimeout  = 15 * time.Second
	defaultTLS             = true
	defaultPruneMissing    = true
)

// UseTLS resolves the TLS tri-state to its default.
func (c IRC) UseTLS() bool {
	if c.TLS == nil {
		return defaultTLS
	}
	return *c.TLS
}

// Prune resolves the bot-wide prune policy to its default (true).
func (c Sync) Prune() bool {
	if c.PruneMissing == nil {
		return defaultPruneMissing
	}
	return *c.PruneMissing
}

// GetStructuredConfig loads, merges, and validates the bot
// configuration from all available sources in the following priority
// order (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. TOML file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withTOML().
		build()
}
