package util

import (
	"regexp"
	"strings"
)

var hexAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NormalizeAccount lowercases a hex account string for storage. Attribution
// addresses are compared case-insensitively, so the stored casing never
// matters; lowering keeps rows uniform.
func NormalizeAccount(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidAccount reports whether s looks like a 20-byte hex account address.
func ValidAccount(s string) bool {
	return hexAddressRe.MatchString(strings.TrimSpace(s))
}

// SameAccount compares two account strings ignoring case and surrounding
// whitespace. Checksummed and lowercased forms of one address are equal.
func SameAccount(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
