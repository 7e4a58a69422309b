package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when
// required configuration groups are incomplete or invalid.
var (
	// ErrInvalidIRCConfigs indicates missing network settings (server
	// address or nick).
	ErrInvalidIRCConfigs = errors.New("invalid irc configuration")
	// ErrInvalidChannelsConfigs indicates a missing channel-config
	// directory.
	ErrInvalidChannelsConfigs = errors.New("invalid channels configuration")
	// ErrUnknownConfigKey indicates an unrecognized key in a TOML file,
	// usually a typo.
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)
