package trustview

import (
	"strings"
)

// placeholderSentinels are literal strings that sometimes arrive in place of
// an actual value and must never be rendered as text.
var placeholderSentinels = map[string]struct{}{
	"null":      {},
	"undefined": {},
	"n/a":       {},
	"na":        {},
	"none":      {},
	"nil":       {},
	"-":         {},
}

// escapeArtifacts are backslash sequences left behind by double-encoded JSON.
var escapeArtifacts = strings.NewReplacer(
	`\\n`, " ",
	`\\t`, " ",
	`\\r`, " ",
	`\\"`, `"`,
	`\\'`, `'`,
	`\\/`, `/`,
	`\n`, " ",
	`\t`, " ",
	`\r`, " ",
	`\"`, `"`,
	`\'`, `'`,
	`\/`, `/`,
	`\\`, ``,
)

// CleanText strips escape artifacts and surrounding whitespace from a
// user-supplied free-text field, returning "" when the result isn't
// meaningful text. Every name, bio, location and description passes through
// here before it can reach a rendering surface.
func CleanText(raw string) string {
	s := escapeArtifacts.Replace(raw)
	s = strings.Join(strings.Fields(s), " ")
	if !isMeaningful(s) {
		return ""
	}
	return s
}

func isMeaningful(s string) bool {
	if s == "" {
		return false
	}
	_, placeholder := placeholderSentinels[strings.ToLower(s)]
	return !placeholder
}
