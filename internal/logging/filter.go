// Package logging provides logging utilities including sensitive data filtering.
// Environment descriptors may carry credentials in their env_overrides
// (package-index tokens, signing keys); this package makes sure those values
// never reach the log file or the dry-run plan in clear text.
package logging

import (
	"io"
	"regexp"
	"strings"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns contains compiled regular expressions for detecting
// credential-shaped values inside free-form text (command lines, captured
// output, log messages).
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),

	// PyPI upload tokens
	regexp.MustCompile(`pypi-[a-zA-Z0-9_-]{20,}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_-]{20,}`),

	// Generic secret assignments (secret, password, token, credential)
	regexp.MustCompile(`(?i)(secret|password|passwd|pwd|credential|token|api[_-]?key)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// SSH private keys
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),
}

// sensitiveKeys contains env variable name fragments whose values must
// always be redacted. Case-insensitive matching is performed.
var sensitiveKeys = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"token",
	"secret",
	"password",
	"passwd",
	"credential",
	"api_key",
	"apikey",
	"private_key",
	"auth",
}

// FilterSensitiveValue replaces any matches of sensitive patterns in a
// string with [REDACTED]. Use this when logging command output or command
// lines that might embed credentials.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveKey checks if an environment variable name indicates a
// sensitive value.
func IsSensitiveKey(name string) bool {
	lowerName := strings.ToLower(name)
	for _, fragment := range sensitiveKeys {
		if strings.Contains(lowerName, fragment) {
			return true
		}
	}
	return false
}

// RedactIfSensitive returns [REDACTED] when the env variable name
// indicates sensitive data, otherwise the pattern-filtered value.
func RedactIfSensitive(name, value string) string {
	if IsSensitiveKey(name) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// RedactEnvOverrides returns a copy of an env_overrides map with sensitive
// values redacted, safe for logging and for the dry-run plan.
func RedactEnvOverrides(overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return nil
	}
	safe := make(map[string]string, len(overrides))
	for k, v := range overrides {
		safe[k] = RedactIfSensitive(k, v)
	}
	return safe
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
// This is used to wrap the log file writer to ensure credentials are never
// written to disk, even when they appear in captured command output.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	_, err = fw.w.Write([]byte(filtered))
	if err != nil {
		return 0, err
	}
	// Return original length so callers don't think there was a short write
	return len(p), nil
}
