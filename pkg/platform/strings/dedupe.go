// Package strings provides string slice helpers for registry data.
package strings

import (
	"strings"
)

// Compact trims each value, drops empty ones and removes duplicates while
// preserving order. It returns nil when nothing remains.
//
// Example:
//
//	Compact([]string{" ok ", "ok", "", "clientHold"})
//	// Returns: []string{"ok", "clientHold"}
func Compact(values []string) []string {
	return compact(values, strings.TrimSpace)
}

// CompactHosts is like Compact for host names: values are lowercased and a
// trailing root dot is removed before comparison.
//
// Example:
//
//	CompactHosts([]string{"A.IANA-SERVERS.NET.", "a.iana-servers.net"})
//	// Returns: []string{"a.iana-servers.net"}
func CompactHosts(values []string) []string {
	return compact(values, func(v string) string {
		return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(v)), ".")
	})
}

func compact(values []string, normalize func(string) string) []string {
	var result []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
