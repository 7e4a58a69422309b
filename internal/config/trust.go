// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// TrustLevel discriminates the two privilege tiers of chat commands.
type TrustLevel int

const (
	// TrustOwner — bot administration; owners list only.
	TrustOwner TrustLevel = iota
	// TrustTrusted — sync and pull commands; trusted list, with owners
	// implicitly included.
	TrustTrusted
)

// IsTrusted reports whether the given services account (as delivered by
// the IRCv3 account tag) is allowed commands at the given level.
// Accounts compare case-insensitively, matching services semantics. An
// empty account — an unidentified sender — is never trusted.
func (cfg *StructuredConfig) IsTrusted(account string, level TrustLevel) bool {
	if account == "" {
		return false
	}

	if containsAccount(cfg.Owners, account) {
		return true
	}
	if level == TrustTrusted && containsAccount(cfg.Trusted, account) {
		return true
	}

	return false
}

func containsAccount(list []string, account string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, account) {
			return true
		}
	}
	return false
}
