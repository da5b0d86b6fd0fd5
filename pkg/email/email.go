// Package email provides small helpers over login email strings. Logins
// arrive from snapshots in mixed case; comparisons happen on the normalized
// form.
package email

import "strings"

// Normalize lowercases and trims a login for comparison and map keying.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasDomainSuffix reports whether the normalized email ends with the given
// "@domain" suffix. An empty email never matches.
func HasDomainSuffix(email, suffix string) bool {
	e := Normalize(email)
	if e == "" {
		return false
	}
	return strings.HasSuffix(e, suffix)
}
