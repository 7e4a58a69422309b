// SPDX-License-Identifier: Apache-2.0

// Package http implements the bot's admin HTTP surface: health and
// build info probes, the sync-run history API, and endpoints that
// trigger channel syncs out of band (deploy hooks, cron on another
// host, an operator with curl).
package http
