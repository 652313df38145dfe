// Package sanitize strips dangerous content from user-supplied text
// before it is stored or forwarded upstream.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips all HTML, including script tags and their contents.
var strict = bluemonday.StrictPolicy()

var jsURIRe = regexp.MustCompile(`(?i)javascript\s*:`)

// Text removes all HTML markup and javascript: URIs from s and trims
// surrounding whitespace. Used for chat messages, discussion comments,
// and message bodies.
func Text(s string) string {
	s = strict.Sanitize(s)
	s = jsURIRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename reduces a client-supplied filename to a safe basename:
// path separators and shell-relevant characters are replaced with
// underscores and the result is capped at 100 characters.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeFilenameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "upload"
	}
	return name
}
