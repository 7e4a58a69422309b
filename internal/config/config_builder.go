package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.applyDefaults()

	if err := config.resolvePasswordFile(); err != nil {
		return nil, err
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withTOML() *configBuilder {
	var tomlPath string

	for _, cfg := range b.configs {
		if cfg.TOMLFilePath != "" {
			tomlPath = cfg.TOMLFilePath
		}
	}

	if tomlPath != "" {
		tomlCfg, err := parseTOML(tomlPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, tomlCfg)
	}

	return b
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.IRC.User == "" {
		cfg.IRC.User = cfg.IRC.Nick
	}
	if cfg.IRC.Realname == "" {
		cfg.IRC.Realname = cfg.IRC.Nick
	}
	if cfg.IRC.MessagesPerSecond <= 0 {
		cfg.IRC.MessagesPerSecond = DefaultMessagesPerSec
	}
	if cfg.IRC.Burst <= 0 {
		cfg.IRC.Burst = DefaultBurst
	}
	if cfg.Channels.Branch == "" {
		cfg.Channels.Branch = DefaultBranch
	}
	if cfg.Sync.Concurrency <= 0 {
		cfg.Sync.Concurrency = DefaultConcurrency
	}
}

// resolvePasswordFile implements the password_file indirection: when
// set, the file's trimmed contents replace the in-config password.
func (cfg *StructuredConfig) resolvePasswordFile() error {
	if cfg.IRC.PasswordFile == "" {
		return nil
	}

	contents, err := os.ReadFile(cfg.IRC.PasswordFile)
	if err != nil {
		return fmt.Errorf("error reading password file: %w", err)
	}
	cfg.IRC.Password = strings.TrimSpace(string(contents))

	return nil
}
