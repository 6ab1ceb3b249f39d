package service

import (
	"fmt"
	"strings"
)

// Strategy selects how a live lookup reaches the registry.
type Strategy string

const (
	// StrategyWhois queries only the WHOIS server pinned for the TLD.
	StrategyWhois Strategy = "whois"

	// StrategyRDAPFirst tries RDAP and falls back to WHOIS on any RDAP failure.
	StrategyRDAPFirst Strategy = "rdap"
)

// ParseStrategy maps a configuration value to a Strategy. Empty means StrategyWhois.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyWhois:
		return StrategyWhois, nil
	case StrategyRDAPFirst:
		return StrategyRDAPFirst, nil
	default:
		return "", fmt.Errorf("unknown lookup strategy %q (want %q or %q)", s, StrategyWhois, StrategyRDAPFirst)
	}
}
