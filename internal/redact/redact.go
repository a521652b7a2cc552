// Package redact strips credentials and connection details from strings
// before they reach logs or error responses.
package redact

import "regexp"

const placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Connection strings with inline credentials.
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),
	// JWT tokens (three base64url segments).
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
	// Key/secret/token assignments.
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)['"\s:=]+[A-Za-z0-9_\-.~+/]{8,}`),
}

// String replaces anything resembling a credential in the input.
func String(input string) string {
	out := input
	for _, p := range patterns {
		out = p.ReplaceAllString(out, placeholder)
	}
	return out
}

// Error redacts an error's message. Nil errors become the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
