// Package normalize trims and collapses user input before validation.
// Security-relevant stripping lives in the sanitize package; these
// helpers only make inputs canonical.
package normalize

import "strings"

// Name collapses internal whitespace runs and trims the result.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Email lowercases and trims an email address. No format validation
// happens here; inputval handles that.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
