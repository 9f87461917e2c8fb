// Package logging builds the zerolog loggers used by TaskBoard and keeps
// credentials out of their output.
package logging

import (
	"io"
	"regexp"
)

// RedactedValue replaces sensitive data in log output.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match the credential shapes TaskBoard handles: service
// account JSON, OAuth tokens and base64 blobs passed through config.
var sensitivePatterns = []*regexp.Regexp{
	// PEM private keys, including the escaped form inside service account JSON.
	regexp.MustCompile(`-----BEGIN[A-Z ]*PRIVATE KEY-----[\s\S]*?-----END[A-Z ]*PRIVATE KEY-----`),

	// "private_key": "...", "private_key_id": "..." and access/refresh tokens in JSON.
	regexp.MustCompile(`"(private_key|private_key_id|access_token|refresh_token|id_token)"\s*:\s*"[^"]*"`),

	// Bearer tokens.
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/=-]{20,}`),

	// Google OAuth access tokens.
	regexp.MustCompile(`ya29\.[a-zA-Z0-9._-]+`),

	// key=value or key: value for service account and token settings.
	regexp.MustCompile(`(?i)(service_account_base64|service_account|access_token|auth)\s*[:=]\s*["']?[a-zA-Z0-9+/=._-]{16,}["']?`),
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with
// RedactedValue.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// FilteringWriter redacts sensitive data before it reaches the wrapped writer.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter wraps w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success even when the
// filtered output is shorter.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if !ContainsSensitiveData(string(p)) {
		if _, err := fw.w.Write(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	if _, err := fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
