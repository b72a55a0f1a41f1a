package security

import (
	"net/http"
	"testing"
)

func TestSanitizeHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Cookie", "__session=secret-token")
	headers.Set("X-Api-Token", "ninja-key")
	headers.Add("Accept", "application/xml")
	headers.Add("Accept", "application/json")

	sanitized := SanitizeHeaders(headers)

	if sanitized["Content-Type"] != "application/json" {
		t.Errorf("plain header should pass through, got %q", sanitized["Content-Type"])
	}
	if sanitized["Cookie"] != "[REDACTED]" {
		t.Errorf("cookie should be redacted, got %q", sanitized["Cookie"])
	}
	if sanitized["X-Api-Token"] != "[REDACTED]" {
		t.Errorf("api token should be redacted, got %q", sanitized["X-Api-Token"])
	}
	if sanitized["Accept"] != "application/xml, application/json" {
		t.Errorf("multi-value header should be joined, got %q", sanitized["Accept"])
	}
}
