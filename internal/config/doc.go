// Package config provides configuration loading, merging, and validation
// facilities for the bot.
//
// Bot configuration is assembled from multiple sources in the following
// priority order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. TOML config file
//
// The main entry point is [GetStructuredConfig]. Per-channel declarative
// configuration (the desired access lists) lives in a separate directory
// of TOML files and is loaded on every sync via [LoadChannel].
package config
