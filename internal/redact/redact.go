// Package redact provides utilities for redacting sensitive information
// from strings before they are logged. This prevents accidental leakage
// of connection strings, credentials and raw SQL that might be embedded
// in error messages bubbling up from the storage layer.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled regex patterns
var (
	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Credentials in key=value or key: value form
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// SQL statement fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)[\s\w,*()='"$]*`,
	)

	patterns = []*regexp.Regexp{dbConnRegex, passwordRegex, sqlRegex}
)

// String returns s with all recognized sensitive fragments replaced by
// the redaction placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error redacts the message of err. Returns an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
