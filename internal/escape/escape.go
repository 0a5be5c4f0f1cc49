// Package escape makes arbitrary text safe to embed in the shell command
// lines and AppleScript sources this subsystem hands to the OS.
package escape

import "strings"

// ShellQuote wraps s in single quotes for safe use as a single shell word.
// Embedded single quotes are handled by closing the quoted span, emitting an
// escaped quote, and reopening it, so any input survives /bin/sh intact.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// AppleScriptString escapes s for embedding inside a double-quoted
// AppleScript string literal. Backslashes must be doubled before quotes are
// escaped; the other order would escape the escapes.
func AppleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
