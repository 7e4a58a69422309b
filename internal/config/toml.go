// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// parseTOML loads a [StructuredConfig] from the TOML file at path.
// Unknown keys are rejected so a typo in the config file fails fast at
// startup instead of silently falling back to a default.
func parseTOML(path string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing TOML config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", ErrUnknownConfigKey, undecoded[0].String(), path)
	}

	return cfg, nil
}
