// Package security redacts sensitive values before they reach logs.
package security

import (
	"net/http"
	"strings"
)

// Sensitive header names that should be redacted.
var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-api-token":         true,
	"x-auth-token":        true,
	"proxy-authorization": true,
}

const redactedValue = "[REDACTED]"

// SanitizeHeaders returns a copy of the headers with sensitive values
// redacted, suitable for logging.
func SanitizeHeaders(headers http.Header) map[string]string {
	sanitized := make(map[string]string, len(headers))

	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			sanitized[key] = redactedValue
		} else {
			sanitized[key] = strings.Join(values, ", ")
		}
	}

	return sanitized
}
