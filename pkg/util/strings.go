package util

import "strings"

// NormalizeTicker trims surrounding whitespace and upper-cases a ticker
// symbol. Cache keys and audit events always use the normalized form.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// FirstNonEmpty returns the first non-empty string in the list.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
