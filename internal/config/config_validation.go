// SPDX-License-Identifier: Apache-2.0

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies
// the invariants the bot needs at startup. Optional surfaces (HTTP
// admin, storage, webhook) may be absent; the IRC connection and the
// channel-config directory may not.
func (cfg *StructuredConfig) validate() error {
	if cfg.IRC.Server == "" || cfg.IRC.Nick == "" {
		return fmt.Errorf("%w: server and nick are required", ErrInvalidIRCConfigs)
	}

	if cfg.Channels.Dir == "" {
		return fmt.Errorf("%w: channel-config directory is required", ErrInvalidChannelsConfigs)
	}

	return nil
}
